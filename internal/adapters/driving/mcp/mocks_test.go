package mcp

import (
	"context"

	"github.com/custodia-labs/typesense-mcp/internal/core/domain"
)

// mockCatalogService is a mock implementation of driving.CatalogService.
type mockCatalogService struct {
	resources   []domain.CollectionResource
	description domain.CollectionDescription
	stats       map[string]any
	healthy     bool
	err         error
	describedAt string
	statsFor    string
}

func (m *mockCatalogService) Resources(_ context.Context) ([]domain.CollectionResource, error) {
	return m.resources, m.err
}

func (m *mockCatalogService) Describe(_ context.Context, uri string) (domain.CollectionDescription, error) {
	m.describedAt = uri
	return m.description, m.err
}

func (m *mockCatalogService) Stats(_ context.Context, collection string) (map[string]any, error) {
	m.statsFor = collection
	return m.stats, m.err
}

func (m *mockCatalogService) Health(_ context.Context) (bool, error) {
	return m.healthy, m.err
}

// mockQueryService is a mock implementation of driving.QueryService.
type mockQueryService struct {
	hits     []map[string]any
	document domain.Document
	err      error
	lastReq  domain.QueryRequest
	lastDoc  [2]string
}

func (m *mockQueryService) Query(_ context.Context, req domain.QueryRequest) ([]map[string]any, error) {
	m.lastReq = req
	return m.hits, m.err
}

func (m *mockQueryService) Document(_ context.Context, collection, id string) (domain.Document, error) {
	m.lastDoc = [2]string{collection, id}
	return m.document, m.err
}

// mockPromptService is a mock implementation of driving.PromptService.
type mockPromptService struct {
	result     domain.PromptResult
	err        error
	name       string
	collection string
}

func (m *mockPromptService) Render(_ context.Context, name, collection string) (domain.PromptResult, error) {
	m.name, m.collection = name, collection
	return m.result, m.err
}

func newMockServer(catalog *mockCatalogService, query *mockQueryService, prompt *mockPromptService) *Server {
	if catalog == nil {
		catalog = &mockCatalogService{}
	}
	if query == nil {
		query = &mockQueryService{}
	}
	if prompt == nil {
		prompt = &mockPromptService{}
	}
	s, err := NewServer(&Ports{Catalog: catalog, Query: query, Prompt: prompt}, "test")
	if err != nil {
		panic(err)
	}
	return s
}
