package driving

import (
	"context"

	"github.com/custodia-labs/typesense-mcp/internal/core/domain"
)

// QueryService answers document queries.
type QueryService interface {
	// Query searches one collection and returns the raw hits.
	Query(ctx context.Context, req domain.QueryRequest) ([]map[string]any, error)

	// Document retrieves one document by ID.
	Document(ctx context.Context, collection, id string) (domain.Document, error)
}
