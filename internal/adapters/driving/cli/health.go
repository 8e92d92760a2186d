package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/typesense-mcp/internal/adapters/driven/typesense"
	"github.com/custodia-labs/typesense-mcp/internal/core/services"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that Typesense is reachable",
	Long: `Resolves the connection flags, calls the Typesense health endpoint once
and prints "ok". Exits non-zero when the node is unreachable or unhealthy.`,
	Args: cobra.NoArgs,
	RunE: runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveFlags(cmd.Flags(), &flags)
	if err != nil {
		return err
	}

	catalog := services.NewCatalogService(typesense.NewClient(typesense.ConfigFromConnection(cfg.Connection)))
	ok, err := catalog.Health(cmd.Context())
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	if !ok {
		return errors.New("health check failed: typesense reports unhealthy")
	}

	cmd.Println("ok")
	return nil
}
