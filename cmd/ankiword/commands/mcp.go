// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents to file flashcards via stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harper/ankiword/internal/mcp"
	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs ankiword as an MCP (Model Context Protocol) server over stdio,
exposing the add_word and recent_additions tools so LLM agents can
file flashcards during a conversation.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by an agent host)
  ankiword mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "ankiword": {
  #       "command": "ankiword",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil && verbose {
		log.Printf("No .env file found: %v", err)
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	server := mcpserver.NewMCPServer(
		"ankiword",
		"0.1.0",
	)

	mcp.RegisterTools(server, a.pipeline, a.history, a.cfg.DefaultDeck, a.cfg.DefaultLang)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("ankiword MCP server starting on stdio...")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, shutting down...")
		}
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
