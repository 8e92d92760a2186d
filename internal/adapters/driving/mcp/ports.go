package mcp

import (
	"github.com/custodia-labs/typesense-mcp/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Catalog lists, describes and reports on collections.
	Catalog driving.CatalogService

	// Query searches and retrieves documents.
	Query driving.QueryService

	// Prompt renders collection prompts.
	Prompt driving.PromptService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Catalog == nil {
		return ErrMissingCatalogService
	}
	if p.Query == nil {
		return ErrMissingQueryService
	}
	if p.Prompt == nil {
		return ErrMissingPromptService
	}
	return nil
}
