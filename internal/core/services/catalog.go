package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/typesense-mcp/internal/core/domain"
	"github.com/custodia-labs/typesense-mcp/internal/core/ports/driven"
	"github.com/custodia-labs/typesense-mcp/internal/core/ports/driving"
	"github.com/custodia-labs/typesense-mcp/internal/logger"
)

// Ensure CatalogService implements the interface.
var _ driving.CatalogService = (*CatalogService)(nil)

// CatalogService lists and describes collections.
type CatalogService struct {
	engine driven.SearchEngine
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(engine driven.SearchEngine) *CatalogService {
	return &CatalogService{engine: engine}
}

// Resources lists one resource per collection.
func (s *CatalogService) Resources(ctx context.Context) ([]domain.CollectionResource, error) {
	collections, err := s.engine.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("typesense error: %w", err)
	}
	if len(collections) == 0 {
		return nil, fmt.Errorf("typesense error: %w", domain.ErrNoCollections)
	}

	resources := make([]domain.CollectionResource, 0, len(collections))
	for _, c := range collections {
		resources = append(resources, domain.NewCollectionResource(c))
	}
	return resources, nil
}

// Describe returns the schema of the collection addressed by uri together
// with one sample document. A failed sample lookup leaves the sample nil.
func (s *CatalogService) Describe(ctx context.Context, uri string) (domain.CollectionDescription, error) {
	name, err := domain.CollectionNameFromURI(uri)
	if err != nil {
		return domain.CollectionDescription{}, fmt.Errorf("failed to read collection: %w", err)
	}

	collection, err := s.engine.RetrieveCollection(ctx, name)
	if err != nil {
		return domain.CollectionDescription{}, fmt.Errorf("failed to read collection: %w", err)
	}

	var sample domain.Document
	docs, err := sampleDocuments(ctx, s.engine, name, 1)
	if err != nil {
		logger.Warn("No sample document found for collection %s: %v", name, err)
	} else if len(docs) > 0 {
		sample = docs[0]
	}

	return domain.NewCollectionDescription(collection, sample), nil
}

// Stats returns the full collection descriptor.
func (s *CatalogService) Stats(ctx context.Context, collection string) (map[string]any, error) {
	if collection == "" {
		return nil, fmt.Errorf("%w: missing required parameter: 'collection'", domain.ErrInvalidInput)
	}

	c, err := s.engine.RetrieveCollection(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats for collection '%s': %w", collection, err)
	}
	if c.Raw == nil {
		return map[string]any{"name": c.Name}, nil
	}
	return c.Raw, nil
}

// Health probes the server.
func (s *CatalogService) Health(ctx context.Context) (bool, error) {
	return s.engine.Health(ctx)
}

// sampleDocuments returns up to n documents from a wildcard search.
func sampleDocuments(ctx context.Context, engine driven.SearchEngine, collection string, n int) ([]domain.Document, error) {
	result, err := engine.Search(ctx, collection, domain.SearchParams{Query: "*", PerPage: n})
	if err != nil {
		return nil, err
	}
	return result.Documents(), nil
}
