package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/typesense-mcp/internal/core/domain"
	"github.com/custodia-labs/typesense-mcp/internal/core/ports/driven"
	"github.com/custodia-labs/typesense-mcp/internal/core/ports/driving"
	"github.com/custodia-labs/typesense-mcp/internal/logger"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// ExcludedFields are stripped from every query hit. Embedding vectors are
// large and carry nothing an agent can read.
var ExcludedFields = []string{"embedding"}

// QueryService runs document queries.
type QueryService struct {
	engine driven.SearchEngine
}

// NewQueryService creates a new query service.
func NewQueryService(engine driven.SearchEngine) *QueryService {
	return &QueryService{engine: engine}
}

// Query searches one collection and returns the raw hits.
// Prefix matching is always disabled.
func (s *QueryService) Query(ctx context.Context, req domain.QueryRequest) ([]map[string]any, error) {
	if req.Query == "" || req.Collection == "" || req.QueryBy == "" {
		return nil, fmt.Errorf("%w: missing required parameters: 'query', 'collection', or 'query_by'",
			domain.ErrInvalidInput)
	}

	prefix := false
	params := domain.SearchParams{
		Query:         req.Query,
		QueryBy:       req.QueryBy,
		FilterBy:      req.FilterBy,
		SortBy:        req.SortBy,
		PerPage:       req.EffectiveLimit(),
		Prefix:        &prefix,
		ExcludeFields: ExcludedFields,
	}
	logger.Debug("Query %q on %s by %s (per_page=%d)", req.Query, req.Collection, req.QueryBy, params.PerPage)

	result, err := s.engine.Search(ctx, req.Collection, params)
	if err != nil {
		return nil, fmt.Errorf("failed to query collection '%s': %w", req.Collection, err)
	}
	if result.Hits == nil {
		return []map[string]any{}, nil
	}
	return result.Hits, nil
}

// Document retrieves one document by ID.
func (s *QueryService) Document(ctx context.Context, collection, id string) (domain.Document, error) {
	if collection == "" || id == "" {
		return nil, fmt.Errorf("%w: missing required parameters: 'collection' or 'document_id'",
			domain.ErrInvalidInput)
	}

	doc, err := s.engine.RetrieveDocument(ctx, collection, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve document '%s' from collection '%s': %w", id, collection, err)
	}
	return doc, nil
}
