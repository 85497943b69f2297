// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server for Claude integration.
package main

import (
	"github.com/harperreed/betta/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants like Claude to read and record your betta's care
through a standardized protocol. The server communicates via stdin/stdout.

CLAUDE DESKTOP CONFIGURATION:

  Add this to your Claude Desktop config (claude_desktop_config.json):

  {
    "mcpServers": {
      "betta": {
        "command": "betta",
        "args": ["mcp"]
      }
    }
  }

  On macOS, the config is at:
    ~/Library/Application Support/Claude/claude_desktop_config.json

AVAILABLE TOOLS:

  update_tank           Save the tank configuration
  update_fish           Record a fish observation
  log_water_reading     Log a water test
  log_feeding           Log a feeding
  log_water_change      Log a partial water change
  get_status            Score, level, alerts and likely causes
  list_water_readings   Recent water readings
  list_reminders        Care reminders, overdue first
  complete_reminder     Mark a reminder done
  todays_feedings       Feedings planned for today

AVAILABLE RESOURCES:

  betta://status      Current tank, fish and water with the report
  betta://history     Recent water tests, feedings and observations
  betta://reminders   Reminders, overdue tasks and today's feedings`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(tr)
		if err != nil {
			return err
		}

		ctx, cancel := signalContext(commandContext(cmd))
		defer cancel()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
