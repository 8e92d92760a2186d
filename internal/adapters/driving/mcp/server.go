package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ServerName is the implementation name reported to clients.
const ServerName = "typesense-mcp-server"

// Server is the MCP server for Typesense.
type Server struct {
	ports  *Ports
	server *mcp.Server
}

// NewServer creates a new MCP server with the given ports.
// The version is reported to clients during initialisation.
func NewServer(ports *Ports, version string) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	impl := &mcp.Implementation{
		Name:    ServerName,
		Version: version,
	}

	s := &Server{
		ports:  ports,
		server: mcp.NewServer(impl, &mcp.ServerOptions{HasResources: true}),
	}

	s.registerTools()
	s.registerResources()
	s.registerPrompts()
	s.server.AddReceivingMiddleware(loggingMiddleware, s.resourceListMiddleware)

	return s, nil
}

// Run starts the MCP server over stdio.
// It blocks until the context is cancelled, the client disconnects or an error occurs.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
