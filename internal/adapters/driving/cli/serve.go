package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdeck/internal/adapters/driving/mcp"
	"github.com/custodia-labs/docdeck/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so an AI assistant can list,
open, show, hide, activate and close documents in the deck.

By default, the server communicates over stdio using JSON-RPC.
Use --port to start an HTTP server instead.

Examples:
  # Stdio mode (default)
  docdeck serve

  # HTTP mode (for MCP Inspector, remote access)
  docdeck serve --port 8080

The open documents are saved as the session when the server stops.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	if port < 0 || port > 65535 {
		return fmt.Errorf("invalid port %d", port)
	}

	d, err := requireDeck()
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Manager: d.Manager,
		Opener:  d.Opener,
		Content: d.Content,
		Session: d.Session,
	}, mcp.WithVersion(version))
	if err != nil {
		return err
	}

	if _, err := d.restore(cmd.Context()); err != nil {
		logger.Warn("restoring session: %v", err)
	}

	ctx := cmd.Context()
	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		cmd.Printf("MCP server listening on http://localhost%s\n", addr)
		err = server.RunHTTP(ctx, addr)
	} else {
		err = server.Run(ctx)
	}

	return errors.Join(err, d.shutdown(ctx))
}
