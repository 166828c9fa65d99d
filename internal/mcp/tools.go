// ABOUTME: MCP tool definitions and registration for the ankiword server
// ABOUTME: Exposes add_word and recent_additions over stdio
package mcp

import (
	"github.com/harper/ankiword/internal/core"
	"github.com/harper/ankiword/internal/storage/sqlite"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, pipeline *core.Pipeline, history *sqlite.HistoryStore, defaultDeck, defaultTargetLang string) *Handlers {
	handlers := &Handlers{
		pipeline:          pipeline,
		history:           history,
		defaultDeck:       defaultDeck,
		defaultTargetLang: defaultTargetLang,
	}

	// 1. add_word - classify a word and file a flashcard
	server.AddTool(mcp.Tool{
		Name:        "add_word",
		Description: "Classify a word or phrase, generate a flashcard for it, and add the card to Anki. Reports whether the note was created, already existed, or failed verification.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"word": map[string]interface{}{
					"type":        "string",
					"description": "Word or phrase to add",
				},
				"deck": map[string]interface{}{
					"type":        "string",
					"description": "Anki deck to add the card to (defaults to the configured deck)",
				},
				"target_language": map[string]interface{}{
					"type":        "string",
					"description": "Language the word belongs to (defaults to the configured language)",
				},
			},
			Required: []string{"word"},
		},
	}, handlers.AddWord)

	// 2. recent_additions - list the newest journal entries
	server.AddTool(mcp.Tool{
		Name:        "recent_additions",
		Description: "List recently added words with their outcome (created, duplicate, or failed).",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of entries to return (default: 20)",
					"default":     20,
				},
				"deck": map[string]interface{}{
					"type":        "string",
					"description": "Only list entries for this deck",
				},
			},
		},
	}, handlers.RecentAdditions)

	return handlers
}
