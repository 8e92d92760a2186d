// Package domain defines the core types of the Typesense MCP adapter.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Connection: where and how to reach the Typesense server
//   - Collection: a transient projection of a remote collection
//   - SearchParams / SearchResult: a document search and its raw hits
//   - CollectionResource / CollectionDescription: what agents see of a collection
//   - PromptMessage / PromptResult: generated prompt conversations
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
