package cli

import (
	"fmt"

	"github.com/neilberkman/trailwatch/cmd/trailwatch/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "serve-mcp",
	Short: "Start MCP server over the session journal",
	Long: `Start an MCP (Model Context Protocol) server that lets an assistant
read the live or last unfinished session from the journal.

Configure in your MCP client's config file:
  {
    "mcpServers": {
      "trailwatch": {
        "command": "trailwatch",
        "args": ["serve-mcp"]
      }
    }
  }
`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	if err := mcp.StartServer(dbPath); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}
