// ABOUTME: MCP tool handler implementations for the ankiword server
// ABOUTME: Runs the add-word pipeline and reads the history journal
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harper/ankiword/internal/core"
	"github.com/harper/ankiword/internal/models"
	"github.com/harper/ankiword/internal/storage/sqlite"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	pipeline          *core.Pipeline
	history           *sqlite.HistoryStore // optional
	defaultDeck       string
	defaultTargetLang string
}

// AddWord handles the add_word tool
func (h *Handlers) AddWord(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	word, err := request.RequireString("word")
	if err != nil {
		return mcp.NewToolResultError("word argument is required and must be a string"), nil
	}
	word = strings.TrimSpace(word)
	if word == "" {
		return mcp.NewToolResultError("word must not be empty"), nil
	}

	deck := request.GetString("deck", h.defaultDeck)
	targetLang := request.GetString("target_language", h.defaultTargetLang)

	outcome, err := h.pipeline.AddWord(ctx, word, deck, targetLang)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("add word failed: %v", err)), nil
	}

	response := map[string]interface{}{
		"word":            outcome.Word,
		"deck":            outcome.Deck,
		"target_language": outcome.TargetLang,
		"status":          outcomeStatus(outcome),
	}
	if outcome.Card != nil {
		response["category"] = models.VariantName(outcome.Card)
		response["card"] = outcome.Card
	}
	if outcome.Created() {
		response["note_id"] = outcome.NoteID
	}
	if outcome.Failure != "" {
		response["failure"] = outcome.Failure
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

// RecentAdditions handles the recent_additions tool
func (h *Handlers) RecentAdditions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.history == nil {
		return mcp.NewToolResultError("history journal is not available"), nil
	}

	limit := request.GetInt("limit", 20)
	deck := request.GetString("deck", "")

	var entries []sqlite.Entry
	var err error
	if deck != "" {
		entries, err = h.history.RecentByDeck(deck, limit)
	} else {
		entries, err = h.history.Recent(limit)
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read history: %v", err)), nil
	}

	additions := make([]map[string]interface{}, 0, len(entries))
	for _, entry := range entries {
		item := map[string]interface{}{
			"word":            entry.Word,
			"deck":            entry.Deck,
			"target_language": entry.TargetLang,
			"outcome":         entry.Outcome,
			"created_at":      entry.CreatedAt.Format(time.RFC3339),
		}
		if entry.Category != "" {
			item["category"] = entry.Category
		}
		if entry.NoteID != 0 {
			item["note_id"] = entry.NoteID
		}
		if entry.Explanation != "" {
			item["explanation"] = entry.Explanation
		}
		additions = append(additions, item)
	}

	responseJSON, err := json.Marshal(map[string]interface{}{"additions": additions})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}

func outcomeStatus(outcome *core.Outcome) string {
	switch {
	case outcome.Failure != "":
		return sqlite.OutcomeFailed
	case outcome.Duplicate:
		return sqlite.OutcomeDuplicate
	default:
		return sqlite.OutcomeCreated
	}
}
