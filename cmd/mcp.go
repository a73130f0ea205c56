package cmd

import (
	"github.com/huangsam/partnerscore/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the partner scorecard MCP server",
	Long:  `Launch an MCP server over stdio so AI agents can read scores, criteria and quadrants.`,
	// Nothing may print to stdout before the server starts; it carries the protocol.
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, storeManager)
	},
}
