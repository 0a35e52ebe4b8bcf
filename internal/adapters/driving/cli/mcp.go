package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/deckforge/internal/adapters/driving/mcp"
	"github.com/custodia-labs/deckforge/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

The server exposes the slide library as resources and find_slides, outline,
assemble, annotate and transplant as tools. Tools whose services are not
configured are left out.

By default, the server communicates over stdio using JSON-RPC. Use --port
to start an HTTP server instead.

Examples:
  # Stdio mode (default)
  deckforge mcp serve

  # HTTP mode (for MCP Inspector, remote access)
  deckforge mcp serve --port 8080

Client configuration:
  {
    "mcpServers": {
      "deckforge": {
        "command": "/path/to/deckforge",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	if slideLibrary == nil {
		return errors.New("slide library not configured")
	}

	ports := &mcp.Ports{
		Library:     slideLibrary,
		Collections: collectionService,
		Assembly:    assemblyService,
		Annotation:  annotationService,
		Transplant:  transplantService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if promptWatcher != nil {
		go func() {
			if err := promptWatcher.Watch(ctx); err != nil {
				logger.Warn("prompt watcher stopped: %v", err)
			}
		}()
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(ctx, addr)
	}

	return server.Run(ctx)
}
