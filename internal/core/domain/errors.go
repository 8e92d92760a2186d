package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors, which are wrapped with
// the operation and target that failed.
var (
	// ErrInvalidInput indicates a missing or malformed tool or prompt argument.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidURI indicates a resource URI that does not name a collection.
	ErrInvalidURI = errors.New(
		"invalid collection URI format, expected: typesense://collections/{collectionName}",
	)

	// ErrNoCollections is returned when Typesense reports zero collections.
	// Listing is deliberately treated as a failure in that case so that a
	// misconfigured server surfaces immediately.
	ErrNoCollections = errors.New("no collections found in typesense")

	// ErrUnknownTool indicates a tool name that is not registered.
	ErrUnknownTool = errors.New("unknown tool")

	// ErrUnknownPrompt indicates a prompt name that is not registered.
	ErrUnknownPrompt = errors.New("unknown prompt")

	// Configuration Errors.

	// ErrMissingAPIKey indicates the Typesense API key was not supplied.
	ErrMissingAPIKey = errors.New("typesense API key is required, use --api-key argument")

	// ErrInvalidConfig indicates malformed configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")
)
