// ABOUTME: Shared pipeline assembly for the add and mcp commands
// ABOUTME: Wires config, prompts, OpenAI client, AnkiConnect, and the journal
package commands

import (
	"fmt"
	"log"

	"github.com/harper/ankiword/internal/anki"
	"github.com/harper/ankiword/internal/config"
	"github.com/harper/ankiword/internal/core"
	"github.com/harper/ankiword/internal/llm"
	"github.com/harper/ankiword/internal/storage/sqlite"
)

// app bundles the assembled pipeline with its configuration and the
// optional history journal
type app struct {
	cfg      *config.Config
	pipeline *core.Pipeline
	history  *sqlite.HistoryStore
	db       *sqlite.DB
}

// newApp loads configuration and assembles the full add-word pipeline.
// The history journal is best-effort: a failure to open the database is
// logged and the pipeline runs without it.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}

	prompts, err := llm.LoadPrompts(cfg.PromptsPath)
	if err != nil {
		return nil, fmt.Errorf("loading prompts: %w", err)
	}

	client, err := llm.NewOpenAIClientWithConfig(&llm.ClientConfig{
		APIKey:     cfg.OpenAIKey,
		ChatModel:  cfg.ChatModel,
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.LLMRetries,
		RetryDelay: cfg.RetryDelay,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing OpenAI client: %w", err)
	}

	router := core.NewRouter(client, prompts.Router, core.NewGeneratorSet(client))
	verifier := core.NewVerifier(client, prompts.Verifier)
	agent := core.NewVerifyingRouter(router, verifier, cfg.MaxRetries)
	store := anki.NewClient(cfg.AnkiConnectURL, cfg.AnkiConnectKey)

	a := &app{cfg: cfg}

	var history core.HistoryRecorder
	db, err := sqlite.Open(sqlite.DefaultDBPath())
	if err != nil {
		log.Printf("[CLI] Warning: history journal unavailable: %v", err)
	} else {
		a.db = db
		a.history = sqlite.NewHistoryStore(db)
		history = a.history
	}

	a.pipeline = core.NewPipeline(agent, store, history)
	return a, nil
}

// Close releases the journal database, if open
func (a *app) Close() {
	if a.db != nil {
		_ = a.db.Close()
	}
}
