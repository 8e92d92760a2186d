package driven

import (
	"context"

	"github.com/custodia-labs/typesense-mcp/internal/core/domain"
)

// SearchEngine provides read access to a Typesense server.
// Every call is a single round trip; nothing is cached between calls.
type SearchEngine interface {
	// ListCollections returns every collection on the server.
	ListCollections(ctx context.Context) ([]domain.Collection, error)

	// RetrieveCollection returns the schema and metadata of one collection.
	RetrieveCollection(ctx context.Context, name string) (domain.Collection, error)

	// Search runs a document search against one collection.
	Search(ctx context.Context, collection string, params domain.SearchParams) (domain.SearchResult, error)

	// RetrieveDocument fetches one document by ID.
	RetrieveDocument(ctx context.Context, collection, id string) (domain.Document, error)

	// Health reports whether the server is ready to serve requests.
	Health(ctx context.Context) (bool, error)
}
