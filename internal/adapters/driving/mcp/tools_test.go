package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/typesense-mcp/internal/core/domain"
)

func TestTools_Catalog(t *testing.T) {
	list := tools()
	require.Len(t, list, 3)

	byName := map[string]*mcp.Tool{}
	for _, tool := range list {
		byName[tool.Name] = tool
	}

	query := byName[ToolQuery].InputSchema.(*jsonschema.Schema)
	assert.Equal(t, []string{"query", "collection", "query_by"}, query.Required)
	assert.Equal(t, "integer", query.Properties["limit"].Type)
	assert.JSONEq(t, "10", string(query.Properties["limit"].Default))
	assert.Contains(t, query.Properties, "filter_by")
	assert.Contains(t, query.Properties, "sort_by")

	doc := byName[ToolGetDocument].InputSchema.(*jsonschema.Schema)
	assert.Equal(t, []string{"collection", "document_id"}, doc.Required)

	stats := byName[ToolCollectionStats].InputSchema.(*jsonschema.Schema)
	assert.Equal(t, []string{"collection"}, stats.Required)
}

func TestCallTool_Query(t *testing.T) {
	t.Run("maps arguments and renders hits", func(t *testing.T) {
		query := &mockQueryService{hits: []map[string]any{{"document": map[string]any{"id": "1"}}}}
		s := newMockServer(nil, query, nil)

		text, err := s.callTool(context.Background(), ToolQuery, json.RawMessage(`{
			"query": "dune", "collection": "books", "query_by": "title",
			"filter_by": "year:>1960", "sort_by": "year:desc", "limit": 3,
			"exclude_fields": ["title"]
		}`))

		require.NoError(t, err)
		assert.Equal(t, domain.QueryRequest{
			Query: "dune", Collection: "books", QueryBy: "title",
			FilterBy: "year:>1960", SortBy: "year:desc", Limit: 3,
		}, query.lastReq)
		assert.Equal(t, "[\n  {\n    \"document\": {\n      \"id\": \"1\"\n    }\n  }\n]", text)
	})

	t.Run("absent limit left to the service default", func(t *testing.T) {
		query := &mockQueryService{hits: []map[string]any{}}
		s := newMockServer(nil, query, nil)

		text, err := s.callTool(context.Background(), ToolQuery,
			json.RawMessage(`{"query":"*","collection":"books","query_by":"title"}`))

		require.NoError(t, err)
		assert.Zero(t, query.lastReq.Limit)
		assert.Equal(t, "[]", text)
	})

	t.Run("limit as number or numeric string", func(t *testing.T) {
		tests := []struct {
			limit string
			want  int
		}{
			{limit: `5`, want: 5},
			{limit: `"5"`, want: 5},
			{limit: `" 7 "`, want: 7},
			{limit: `4.9`, want: 4},
			{limit: `"2.5"`, want: 2},
			{limit: `""`, want: 0},
			{limit: `null`, want: 0},
			{limit: `-3`, want: -3},
		}
		for _, tt := range tests {
			query := &mockQueryService{hits: []map[string]any{}}
			s := newMockServer(nil, query, nil)

			_, err := s.callTool(context.Background(), ToolQuery,
				json.RawMessage(`{"query":"*","collection":"books","query_by":"title","limit":`+tt.limit+`}`))

			require.NoError(t, err, tt.limit)
			assert.Equal(t, tt.want, query.lastReq.Limit, tt.limit)
		}
	})

	t.Run("non-numeric limit", func(t *testing.T) {
		for _, limit := range []string{`"five"`, `true`, `[5]`, `"NaN"`, `1e300`} {
			query := &mockQueryService{hits: []map[string]any{}}
			s := newMockServer(nil, query, nil)

			_, err := s.callTool(context.Background(), ToolQuery,
				json.RawMessage(`{"query":"*","collection":"books","query_by":"title","limit":`+limit+`}`))

			assert.ErrorIs(t, err, domain.ErrInvalidInput, limit)
			assert.Contains(t, err.Error(), "limit must be a number", limit)
		}
	})

	t.Run("malformed arguments", func(t *testing.T) {
		s := newMockServer(nil, nil, nil)

		_, err := s.callTool(context.Background(), ToolQuery, json.RawMessage(`{"query": 42}`))

		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	})
}

func TestCallTool_GetDocument(t *testing.T) {
	query := &mockQueryService{document: domain.Document{"id": "42", "title": "Dune"}}
	s := newMockServer(nil, query, nil)

	text, err := s.callTool(context.Background(), ToolGetDocument,
		json.RawMessage(`{"collection":"books","document_id":"42"}`))

	require.NoError(t, err)
	assert.Equal(t, [2]string{"books", "42"}, query.lastDoc)
	assert.Equal(t, "{\n  \"id\": \"42\",\n  \"title\": \"Dune\"\n}", text)
}

func TestCallTool_CollectionStats(t *testing.T) {
	catalog := &mockCatalogService{stats: map[string]any{"name": "books", "num_documents": 2}}
	s := newMockServer(catalog, nil, nil)

	text, err := s.callTool(context.Background(), ToolCollectionStats, json.RawMessage(`{"collection":"books"}`))

	require.NoError(t, err)
	assert.Equal(t, "books", catalog.statsFor)
	assert.JSONEq(t, `{"name":"books","num_documents":2}`, text)
}

func TestCallTool_UnknownTool(t *testing.T) {
	s := newMockServer(nil, nil, nil)

	_, err := s.callTool(context.Background(), "typesense_delete", nil)

	assert.True(t, errors.Is(err, domain.ErrUnknownTool))
	assert.Equal(t, "unknown tool: typesense_delete", err.Error())
}

func TestCallTool_NilArguments(t *testing.T) {
	query := &mockQueryService{err: errors.New("invalid input: missing required parameters")}
	s := newMockServer(nil, query, nil)

	_, err := s.callTool(context.Background(), ToolQuery, nil)

	require.Error(t, err)
	assert.Equal(t, domain.QueryRequest{}, query.lastReq)
}

func TestHandleTool_ErrorsBecomeResults(t *testing.T) {
	query := &mockQueryService{err: errors.New("failed to query collection 'books': boom")}
	s := newMockServer(nil, query, nil)

	req := &mcp.CallToolRequest{Params: &mcp.CallToolParamsRaw{
		Name:      ToolQuery,
		Arguments: json.RawMessage(`{"query":"x","collection":"books","query_by":"title"}`),
	}}
	res, err := s.handleTool(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, res.IsError)
	require.Len(t, res.Content, 1)
	assert.Equal(t, "failed to query collection 'books': boom", res.Content[0].(*mcp.TextContent).Text)
}

func TestHandleTool_Success(t *testing.T) {
	s := newMockServer(nil, &mockQueryService{document: domain.Document{"id": "1"}}, nil)

	req := &mcp.CallToolRequest{Params: &mcp.CallToolParamsRaw{
		Name:      ToolGetDocument,
		Arguments: json.RawMessage(`{"collection":"books","document_id":"1"}`),
	}}
	res, err := s.handleTool(context.Background(), req)

	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, "{\n  \"id\": \"1\"\n}", res.Content[0].(*mcp.TextContent).Text)
}
