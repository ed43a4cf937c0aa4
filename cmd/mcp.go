package cmd

import (
	"github.com/cadencehq/cadence/internal/mcp"
	"github.com/cadencehq/cadence/internal/meetstore"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Cadence MCP server",
	Long:  `Launch an MCP server that allows AI agents to query meeting insights and preview imports via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// The normal headers are suppressed in MCP mode to avoid
		// polluting stdio which is used for the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, meetstore.Manager.Get())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
