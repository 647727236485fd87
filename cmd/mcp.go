package cmd

import (
	"github.com/huangsam/scorecard/core"
	"github.com/huangsam/scorecard/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp [files...]",
	Short: "Start the Scorecard MCP server",
	Long: `Launch an MCP server on stdio that lets AI agents manage one in-memory
scorecard session: edit weights, add or import entries, view the dashboard,
compare entities and export results.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Logs already go to stderr, so stdio stays free for the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		session, _, err := core.LoadSession(rootCtx, cfg)
		if err != nil {
			return err
		}
		return mcp.StartMCPServer(rootCtx, session, cfg, historyManager)
	},
}
