package driving

import (
	"context"

	"github.com/custodia-labs/typesense-mcp/internal/core/domain"
)

// CatalogService exposes collections as browsable resources.
type CatalogService interface {
	// Resources lists one resource per collection.
	// Zero collections is reported as domain.ErrNoCollections.
	Resources(ctx context.Context) ([]domain.CollectionResource, error)

	// Describe returns the schema and a best-effort sample document of the
	// collection addressed by uri.
	Describe(ctx context.Context, uri string) (domain.CollectionDescription, error)

	// Stats returns the full collection descriptor as reported by the server.
	Stats(ctx context.Context, collection string) (map[string]any, error)

	// Health probes the server.
	Health(ctx context.Context) (bool, error)
}
