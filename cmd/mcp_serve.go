package cmd

import (
	"context"
	"log"
	"os"

	"github.com/chris-regnier/calnotes/internal/logs"
	"github.com/chris-regnier/calnotes/internal/mcptools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

var mcpServeCmd = &cobra.Command{
	Use:   "mcp-serve",
	Short: "Run MCP server on stdio",
	Long: `Starts a Model Context Protocol (MCP) server that exposes calendar note tools
over stdio transport.

Available tools:
  - get_note: Read the note for a day
  - set_note: Write or clear the note for a day
  - delete_notes: Delete the notes for several days at once
  - month_summary: Note count and noted days for a month
  - recent_notes: Notes nearest to today with countdowns
  - search_notes: Fuzzy search over dates and note text

Example MCP client config:
  {
    "mcpServers": {
      "calnotes": {
        "command": "/path/to/calnotes",
        "args": ["mcp-serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	rootCmd.AddCommand(mcpServeCmd)
}

func runMCPServe(cmd *cobra.Command, args []string) error {
	// Storage is already initialized in PersistentPreRunE
	if store == nil {
		return cmd.Help()
	}

	server := mcptools.CreateMCPServer(store, appConfig.DataDir)

	// Log to stderr (stdout is reserved for MCP protocol)
	log.SetOutput(os.Stderr)
	log.Printf("Starting calnotes MCP server (stdio transport)")
	log.Printf("Storage backend: %s", appConfig.Storage)
	log.Printf("Data directory: %s", appConfig.DataDir)
	logs.Printf("mcp server started with %s storage", appConfig.Storage)

	// Blocks until the transport is closed
	runErr := server.Run(context.Background(), &mcp.StdioTransport{})
	exitOn(flushOnExit())
	return runErr
}
