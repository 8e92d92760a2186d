package cli

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/typesense-mcp/internal/adapters/driving/mcp"
)

// versionCmd reports the build version, which is also the version the
// server announces to MCP clients during initialization.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the server version",
	Long: `Prints the build version and the implementation name announced to MCP
clients in the initialize handshake. Does not contact Typesense.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("typesense-mcp %s\n", version)
		cmd.Printf("  mcp server: %s/%s\n", mcp.ServerName, version)
		cmd.Printf("  go:         %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
