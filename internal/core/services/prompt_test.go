package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/typesense-mcp/internal/core/domain"
)

func booksEngine() *mockSearchEngine {
	fields := []map[string]any{{"name": "title", "type": "string"}}
	return &mockSearchEngine{
		collection: domain.Collection{
			Name:         "books",
			NumDocuments: int64Ptr(2),
			Fields:       fields,
			Raw:          map[string]any{"name": "books", "num_documents": 2, "fields": fields},
		},
		result: hitsOf(domain.Document{"id": "1", "title": "Dune"}, domain.Document{"id": "2", "title": "Emma"}),
	}
}

func TestPromptService_AnalyzeCollection(t *testing.T) {
	engine := booksEngine()

	res, err := NewPromptService(engine).Render(context.Background(), "analyze_collection", "books")

	require.NoError(t, err)
	require.Len(t, res.Messages, 2)
	for _, m := range res.Messages {
		assert.Equal(t, "user", m.Role)
	}

	text := res.Messages[0].Text
	assert.True(t, strings.HasPrefix(text, "Please analyze the following Typesense collection:\nCollection: books\n\nSchema:\n"))
	assert.Contains(t, text, `"num_documents": 2`)
	assert.Contains(t, text, "\n\nDocument count: 2\n\n")
	assert.Contains(t, text, "Sample documents:\n[")
	assert.Contains(t, text, `"title": "Emma"`)
	assert.Equal(t, analyzeInstruction, res.Messages[1].Text)
	assert.Equal(t, "Analyze a Typesense collection structure and contents", res.Description)

	require.Len(t, engine.searchCalls, 1)
	assert.Equal(t, "*", engine.searchCalls[0].Query)
	assert.Equal(t, 5, engine.searchCalls[0].PerPage)
}

func TestPromptService_UnknownDocumentCount(t *testing.T) {
	engine := booksEngine()
	engine.collection.NumDocuments = nil

	res, err := NewPromptService(engine).Render(context.Background(), "analyze_collection", "books")

	require.NoError(t, err)
	assert.Contains(t, res.Messages[0].Text, "Document count: unknown")
}

func TestPromptService_SearchSuggestions(t *testing.T) {
	res, err := NewPromptService(booksEngine()).Render(context.Background(), "search_suggestions", "books")

	require.NoError(t, err)
	require.Len(t, res.Messages, 2)

	text := res.Messages[0].Text
	assert.True(t, strings.HasPrefix(text,
		"Please suggest effective search queries for the following Typesense collection:\nCollection: books\n\nFields:\n"))
	assert.Contains(t, text, `"type": "string"`)
	assert.Contains(t, text, "\n\nSample documents:\n")
	assert.Equal(t, suggestionsInstruction, res.Messages[1].Text)
}

func TestPromptService_SampleFailureYieldsEmptyList(t *testing.T) {
	engine := booksEngine()
	engine.searchErr = errUpstream

	res, err := NewPromptService(engine).Render(context.Background(), "search_suggestions", "books")

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(res.Messages[0].Text, "Sample documents:\n[]"))
}

func TestPromptService_Errors(t *testing.T) {
	t.Run("unknown prompt before any remote call", func(t *testing.T) {
		engine := booksEngine()

		_, err := NewPromptService(engine).Render(context.Background(), "summarize", "books")

		assert.True(t, errors.Is(err, domain.ErrUnknownPrompt))
		assert.Equal(t, "unknown prompt: summarize", err.Error())
		assert.Zero(t, engine.calls)
	})

	t.Run("missing collection before any remote call", func(t *testing.T) {
		engine := booksEngine()

		_, err := NewPromptService(engine).Render(context.Background(), "analyze_collection", "")

		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
		assert.Contains(t, err.Error(), "collection name is required")
		assert.Zero(t, engine.calls)
	})

	t.Run("schema failure wrapped", func(t *testing.T) {
		engine := booksEngine()
		engine.retrieveErr = errUpstream

		_, err := NewPromptService(engine).Render(context.Background(), "analyze_collection", "books")

		assert.Equal(t, "failed to analyze collection books: connection refused", err.Error())
	})
}
