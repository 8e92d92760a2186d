package services

import (
	"context"
	"errors"

	"github.com/custodia-labs/typesense-mcp/internal/core/domain"
)

var errUpstream = errors.New("connection refused")

// mockSearchEngine implements driven.SearchEngine for testing.
type mockSearchEngine struct {
	collections   []domain.Collection
	listErr       error
	collection    domain.Collection
	retrieveErr   error
	result        domain.SearchResult
	searchErr     error
	document      domain.Document
	documentErr   error
	healthy       bool
	healthErr     error
	calls         int
	searchCalls   []domain.SearchParams
	searchTargets []string
}

func (m *mockSearchEngine) ListCollections(_ context.Context) ([]domain.Collection, error) {
	m.calls++
	return m.collections, m.listErr
}

func (m *mockSearchEngine) RetrieveCollection(_ context.Context, name string) (domain.Collection, error) {
	m.calls++
	if m.retrieveErr != nil {
		return domain.Collection{}, m.retrieveErr
	}
	c := m.collection
	if c.Name == "" {
		c.Name = name
	}
	return c, nil
}

func (m *mockSearchEngine) Search(
	_ context.Context, collection string, params domain.SearchParams,
) (domain.SearchResult, error) {
	m.calls++
	m.searchCalls = append(m.searchCalls, params)
	m.searchTargets = append(m.searchTargets, collection)
	if m.searchErr != nil {
		return domain.SearchResult{}, m.searchErr
	}
	return m.result, nil
}

func (m *mockSearchEngine) RetrieveDocument(_ context.Context, _, _ string) (domain.Document, error) {
	m.calls++
	return m.document, m.documentErr
}

func (m *mockSearchEngine) Health(_ context.Context) (bool, error) {
	m.calls++
	return m.healthy, m.healthErr
}

func int64Ptr(v int64) *int64 { return &v }

func hitsOf(docs ...domain.Document) domain.SearchResult {
	hits := make([]map[string]any, 0, len(docs))
	for _, d := range docs {
		hits = append(hits, map[string]any{"document": d})
	}
	return domain.SearchResult{Found: len(docs), Hits: hits}
}
