// Package mcp provides an MCP (Model Context Protocol) server adapter for Typesense.
// It lets AI assistants browse collections, search and fetch documents, and
// request analysis prompts over stdio.
package mcp

import "errors"

// Errors returned when a required service is not provided.
var (
	ErrMissingCatalogService = errors.New("mcp: catalog service is required")
	ErrMissingQueryService   = errors.New("mcp: query service is required")
	ErrMissingPromptService  = errors.New("mcp: prompt service is required")
)
