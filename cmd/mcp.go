package cmd

import (
	"github.com/huangsam/irmetrics/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the irmetrics MCP server",
	Long:  `Launch an MCP server on stdio that lets AI agents label ranked lists and compute IR metrics through standard tools.`,
	// Logs go to stderr; stdout carries the protocol
	PreRunE: setupWith(nil),
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, runManager)
	},
}
