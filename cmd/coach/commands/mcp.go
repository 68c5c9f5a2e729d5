// ABOUTME: MCP command starts the Model Context Protocol server
// ABOUTME: Exposes the coach, module search, and contact lookup to LLM agents over stdio
package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/harper/tap-coach/internal/logging"
	"github.com/harper/tap-coach/internal/mcp"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs the coach as an MCP (Model Context Protocol) server so agents
like Claude can ask coaching questions, search the TAP modules,
and look up sponsor contacts via stdio.`,
		Args: cobra.NoArgs,
		RunE: runMCP,
		Example: `  # Start MCP server (typically launched by the agent host)
  coach mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "tap-coach": {
  #       "command": "coach",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

func runMCP(cmd *cobra.Command, args []string) error {
	log := logging.For("mcp")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}

	server := mcpserver.NewMCPServer("TAP Coach", versionInfo.Version)
	mcp.RegisterTools(server, a.session, a.hunter())

	if !quiet {
		log.Info("MCP server starting on stdio")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Info("shutdown signal received")
		}
		if err := a.Close(); err != nil {
			log.Warn("error closing storage", "err", err)
		}
	case err := <-serverErr:
		if closeErr := a.Close(); closeErr != nil {
			log.Warn("error closing storage", "err", closeErr)
		}
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
