// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents to ingest and search documents via stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kensakuhq/kensaku/internal/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs kensaku as an MCP (Model Context Protocol) server, enabling
LLM agents to ingest documents and run semantic search via stdio.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically launched by an agent host)
  kensaku mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "kensaku": {
  #       "command": "kensaku",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	svc, _, err := newService()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := svc.Initialize(ctx, false); err != nil {
		return fmt.Errorf("initializing index: %w", err)
	}

	server := mcpserver.NewMCPServer(
		"Kensaku Document Search",
		"0.1.0",
	)
	mcp.RegisterTools(server, svc)

	if !quiet {
		log.Println("kensaku MCP server starting on stdio...")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, exiting")
		}
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
