package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NicholasSynovic/joss-dataset/internal/adapters/driving/mcp"
	"github.com/NicholasSynovic/joss-dataset/internal/core/domain"
	"github.com/NicholasSynovic/joss-dataset/internal/core/ports/driving"
)

// serveMCP runs the MCP server, over HTTP when addr is set. Tests
// replace it.
var serveMCP = func(ctx context.Context, query driving.QueryService, addr string) error {
	server, err := mcp.NewServer(&mcp.Ports{Query: query})
	if err != nil {
		return err
	}
	if addr != "" {
		return server.RunHTTP(ctx, addr)
	}
	return server.Run(ctx)
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for exposing the dataset over the Model Context Protocol (MCP).`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start a Model Context Protocol server over the SQLite dataset.

Tools:      search_submissions, get_submission, dataset_stats
Resources:  joss://submissions, joss://submissions/{issueNumber}, joss://runs

By default the server speaks JSON-RPC over stdio. Use --port to serve the
streamable HTTP transport instead.

Examples:
  # Stdio mode, for desktop assistants
  joss mcp serve

  # HTTP mode, for the MCP Inspector
  joss mcp serve --port 8080`,
	Args: cobra.NoArgs,
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
	if port < 0 || port > 65535 {
		return domain.NewConfigurationError("port", fmt.Sprintf("must be 0-65535, got %d", port))
	}

	query, closeQuery, err := openQueryService()
	if err != nil {
		return err
	}
	defer closeQuery()

	ctx, cancel := interruptible(cmd)
	defer cancel()

	var addr string
	if port > 0 {
		addr = fmt.Sprintf(":%d", port)
		cmd.PrintErrf("MCP server listening on http://localhost%s\n", addr)
	}
	return serveMCP(ctx, query, addr)
}
