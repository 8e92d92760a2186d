package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/typesense-mcp/internal/core/domain"
)

// Tool names.
const (
	ToolQuery           = "typesense_query"
	ToolGetDocument     = "typesense_get_document"
	ToolCollectionStats = "typesense_collection_stats"
)

// queryArgs is the input of the query tool. Any exclude_fields value the
// caller sends is dropped; embeddings are always excluded.
type queryArgs struct {
	Query      string   `json:"query"`
	Collection string   `json:"collection"`
	QueryBy    string   `json:"query_by"`
	FilterBy   string   `json:"filter_by"`
	SortBy     string   `json:"sort_by"`
	Limit      limitArg `json:"limit"`
}

// limitArg accepts a number or a numeric string. Fractions are truncated
// and an empty string counts as absent.
type limitArg int

func (l *limitArg) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	text := string(data)
	if strings.HasPrefix(text, `"`) {
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		text = strings.TrimSpace(text)
		if text == "" {
			*l = 0
			return nil
		}
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.Abs(f) > math.MaxInt32 {
		return fmt.Errorf("limit must be a number, got %s", data)
	}
	*l = limitArg(f)
	return nil
}

// documentArgs is the input of the get-document tool.
type documentArgs struct {
	Collection string `json:"collection"`
	DocumentID string `json:"document_id"`
}

// statsArgs is the input of the collection-stats tool.
type statsArgs struct {
	Collection string `json:"collection"`
}

func stringProp(description string) *jsonschema.Schema {
	return &jsonschema.Schema{Type: "string", Description: description}
}

// tools returns the static tool catalog.
func tools() []*mcp.Tool {
	return []*mcp.Tool{
		{
			Name:        ToolQuery,
			Description: "Search for relevant documents in the TypeSense database based on the user's query.",
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"query":      stringProp("The search query entered by the user."),
					"collection": stringProp("The name of the TypeSense collection to search within."),
					"query_by":   stringProp("Comma-separated fields to search in the collection, e.g., 'title,content'."),
					"filter_by":  stringProp("Optional filtering criteria, e.g., 'category:Chatbot'."),
					"sort_by":    stringProp("Sorting criteria, e.g., 'created_at:desc'."),
					"limit": {
						Type:        "integer",
						Description: "The maximum number of results to return.",
						Default:     json.RawMessage("10"),
					},
				},
				Required: []string{"query", "collection", "query_by"},
			},
		},
		{
			Name:        ToolGetDocument,
			Description: "Retrieve a specific document by ID from a Typesense collection",
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"collection":  stringProp("The name of the TypeSense collection"),
					"document_id": stringProp("The ID of the document to retrieve"),
				},
				Required: []string{"collection", "document_id"},
			},
		},
		{
			Name:        ToolCollectionStats,
			Description: "Get statistics about a Typesense collection",
			InputSchema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"collection": stringProp("The name of the TypeSense collection"),
				},
				Required: []string{"collection"},
			},
		},
	}
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	for _, t := range tools() {
		s.server.AddTool(t, s.handleTool)
	}
}

// handleTool dispatches a tool invocation. Validation and upstream failures
// become error results rather than protocol errors.
func (s *Server) handleTool(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := s.callTool(ctx, req.Params.Name, req.Params.Arguments)
	if err != nil {
		return errorResult(err), nil
	}
	return textResult(text), nil
}

// callTool runs the named tool and returns its pretty-printed JSON output.
func (s *Server) callTool(ctx context.Context, name string, raw json.RawMessage) (string, error) {
	var (
		out any
		err error
	)

	switch name {
	case ToolQuery:
		var args queryArgs
		if err := decodeArgs(raw, &args); err != nil {
			return "", err
		}
		req := domain.QueryRequest{
			Query:      args.Query,
			Collection: args.Collection,
			QueryBy:    args.QueryBy,
			FilterBy:   args.FilterBy,
			SortBy:     args.SortBy,
			Limit:      int(args.Limit),
		}
		out, err = s.ports.Query.Query(ctx, req)

	case ToolGetDocument:
		var args documentArgs
		if err := decodeArgs(raw, &args); err != nil {
			return "", err
		}
		out, err = s.ports.Query.Document(ctx, args.Collection, args.DocumentID)

	case ToolCollectionStats:
		var args statsArgs
		if err := decodeArgs(raw, &args); err != nil {
			return "", err
		}
		out, err = s.ports.Catalog.Stats(ctx, args.Collection)

	default:
		return "", fmt.Errorf("%w: %s", domain.ErrUnknownTool, name)
	}

	if err != nil {
		return "", err
	}
	return domain.PrettyJSON(out)
}

// decodeArgs unmarshals tool arguments. Missing arguments decode as empty.
func decodeArgs(raw json.RawMessage, v any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: malformed arguments: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
		IsError: true,
	}
}
