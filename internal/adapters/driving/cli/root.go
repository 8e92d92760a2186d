// Package cli provides the typesense-mcp command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/typesense-mcp/internal/adapters/driven/typesense"
	"github.com/custodia-labs/typesense-mcp/internal/adapters/driving/mcp"
	"github.com/custodia-labs/typesense-mcp/internal/core/domain"
	"github.com/custodia-labs/typesense-mcp/internal/core/ports/driving"
	"github.com/custodia-labs/typesense-mcp/internal/core/services"
	"github.com/custodia-labs/typesense-mcp/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var flags flagValues

var rootCmd = &cobra.Command{
	Use:   "typesense-mcp",
	Short: "Typesense MCP server",
	Long: `Serves a Typesense node to AI assistants over the Model Context Protocol.

The server communicates over stdio using JSON-RPC. Collections are exposed as
resources, searches and lookups as tools, and two prompts help an assistant
analyse a collection or plan queries.

Flags are read leniently: unknown flags, stray values and a trailing flag
with no value are ignored, and so are --help and -h. Run "typesense-mcp help"
for this text.

Examples:
  typesense-mcp --api-key xyz
  typesense-mcp --host search.internal --port 443 --protocol https --api-key xyz

MCP client configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "typesense": {
        "command": "/path/to/typesense-mcp",
        "args": ["--api-key", "xyz"]
      }
    }
  }`,
	Args:               cobra.ArbitraryArgs,
	DisableFlagParsing: true,
	SilenceUsage:       true,
	SilenceErrors:      true,
	RunE:               runServe,
}

func init() {
	bindFlags(rootCmd.PersistentFlags(), &flags)
}

// Execute runs the root command. The context is cancelled on shutdown signals.
func Execute(ctx context.Context, v string) error {
	if v != "" {
		version = v
	}
	// A missing .env file is normal.
	_ = godotenv.Load()

	return rootCmd.ExecuteContext(ctx)
}

// runServe receives the raw arguments; the root command leaves flag
// parsing to Resolve.
func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := Resolve(args)
	if err != nil {
		return err
	}

	closer, err := logger.Configure(cfg.Log)
	if err != nil {
		return err
	}
	defer closer.Close()

	if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(cmd.ErrOrStderr(),
			"typesense-mcp speaks MCP over stdio; start it from an MCP client rather than a terminal.")
	}

	ctx := cmd.Context()
	server, err := buildServer(ctx, cfg.Connection)
	if err != nil {
		logger.Error("Failed to start server: %v", err)
		return err
	}

	logger.Info("Typesense MCP server running on stdio")
	err = server.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Server stopped: %v", err)
		return err
	}
	logger.Info("Server stopped")
	return nil
}

// buildServer creates the Typesense client, probes it once and wires the
// services into an MCP server. A failed probe is logged and not fatal.
func buildServer(ctx context.Context, conn domain.Connection) (*mcp.Server, error) {
	logger.Info("Starting with configuration %s", conn)

	engine := typesense.NewClient(typesense.ConfigFromConnection(conn))
	catalog := services.NewCatalogService(engine)
	probeHealth(ctx, catalog)

	return mcp.NewServer(&mcp.Ports{
		Catalog: catalog,
		Query:   services.NewQueryService(engine),
		Prompt:  services.NewPromptService(engine),
	}, version)
}

func probeHealth(ctx context.Context, catalog driving.CatalogService) {
	ok, err := catalog.Health(ctx)
	switch {
	case err != nil:
		logger.Error("Typesense health check failed: %v", err)
	case !ok:
		logger.Error("Typesense reports unhealthy")
	default:
		logger.Info("Typesense health check passed")
	}
}
