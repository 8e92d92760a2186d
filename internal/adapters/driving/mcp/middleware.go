package mcp

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/typesense-mcp/internal/logger"
)

const methodListResources = "resources/list"

// loggingMiddleware logs every incoming request with a request ID, its
// method and duration. Failed requests and tool errors are logged at error.
func loggingMiddleware(next mcp.MethodHandler) mcp.MethodHandler {
	return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
		start := time.Now()
		entry := logger.WithFields(map[string]any{
			"request_id": uuid.NewString(),
			"method":     method,
		})

		notification := strings.HasPrefix(method, "notifications/")
		if !notification {
			entry.Infof("Received %s request", method)
		}

		res, err := next(ctx, method, req)

		entry = entry.WithField("duration", time.Since(start).Round(time.Microsecond))
		switch {
		case err != nil:
			entry.Errorf("Error handling %s request: %v", method, err)
		case isToolError(res):
			entry.Errorf("Tool call failed: %s", toolErrorText(res))
		case notification:
			entry.Debugf("Handled %s", method)
		default:
			entry.Infof("Handled %s request", method)
		}
		return res, err
	}
}

// resourceListMiddleware serves resources/list from the catalog instead of
// the SDK's static resource registry, so the listing reflects the server's
// current collections.
func (s *Server) resourceListMiddleware(next mcp.MethodHandler) mcp.MethodHandler {
	return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
		if method != methodListResources {
			return next(ctx, method, req)
		}
		res, err := s.listResources(ctx)
		if err != nil {
			return nil, err
		}
		return res, nil
	}
}

func isToolError(res mcp.Result) bool {
	r, ok := res.(*mcp.CallToolResult)
	return ok && r != nil && r.IsError
}

func toolErrorText(res mcp.Result) string {
	r, ok := res.(*mcp.CallToolResult)
	if !ok || r == nil {
		return ""
	}
	for _, c := range r.Content {
		if t, ok := c.(*mcp.TextContent); ok {
			return t.Text
		}
	}
	return ""
}
