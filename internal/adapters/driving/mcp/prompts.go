package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/typesense-mcp/internal/core/domain"
)

// prompts returns the static prompt catalog.
func prompts() []*mcp.Prompt {
	names := []string{domain.PromptAnalyzeCollection, domain.PromptSearchSuggestions}

	out := make([]*mcp.Prompt, 0, len(names))
	for _, name := range names {
		out = append(out, &mcp.Prompt{
			Name:        name,
			Description: domain.PromptDescriptions[name],
			Arguments: []*mcp.PromptArgument{{
				Name:        "collection",
				Description: "Name of the collection to analyze",
				Required:    true,
			}},
		})
	}
	return out
}

// registerPrompts registers all prompt handlers with the MCP server.
func (s *Server) registerPrompts() {
	for _, p := range prompts() {
		s.server.AddPrompt(p, s.handlePrompt)
	}
}

// handlePrompt renders a prompt. Failures are returned as protocol errors.
func (s *Server) handlePrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	return s.getPrompt(ctx, req.Params.Name, req.Params.Arguments["collection"])
}

func (s *Server) getPrompt(ctx context.Context, name, collection string) (*mcp.GetPromptResult, error) {
	rendered, err := s.ports.Prompt.Render(ctx, name, collection)
	if err != nil {
		return nil, err
	}

	res := &mcp.GetPromptResult{
		Description: rendered.Description,
		Messages:    make([]*mcp.PromptMessage, 0, len(rendered.Messages)),
	}
	for _, m := range rendered.Messages {
		res.Messages = append(res.Messages, &mcp.PromptMessage{
			Role:    mcp.Role(m.Role),
			Content: &mcp.TextContent{Text: m.Text},
		})
	}
	return res, nil
}
