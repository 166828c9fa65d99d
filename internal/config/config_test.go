// ABOUTME: Tests for centralized configuration system
// ABOUTME: Verifies environment variable parsing and validation
package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	// Clear environment to test defaults
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Verify defaults
	if cfg.ChatModel != "gpt-4o-mini" {
		t.Errorf("ChatModel = %s, want gpt-4o-mini", cfg.ChatModel)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.LLMRetries != 3 {
		t.Errorf("LLMRetries = %d, want 3", cfg.LLMRetries)
	}
	if cfg.RetryDelay != 2*time.Second {
		t.Errorf("RetryDelay = %v, want 2s", cfg.RetryDelay)
	}
	if cfg.AnkiConnectURL != "http://127.0.0.1:8765" {
		t.Errorf("AnkiConnectURL = %s, want http://127.0.0.1:8765", cfg.AnkiConnectURL)
	}
	if cfg.PromptsPath != "./prompts" {
		t.Errorf("PromptsPath = %s, want ./prompts", cfg.PromptsPath)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.MaxRetries)
	}
	if cfg.DefaultDeck != "test" {
		t.Errorf("DefaultDeck = %s, want test", cfg.DefaultDeck)
	}
	if cfg.DefaultLang != "Swedish" {
		t.Errorf("DefaultLang = %s, want Swedish", cfg.DefaultLang)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	// Set custom environment variables
	os.Clearenv()
	os.Setenv("OPENAI_API_KEY", "test-key")
	os.Setenv("ANKIWORD_OPENAI_MODEL", "gpt-4")
	os.Setenv("OPENAI_TIMEOUT", "60s")
	os.Setenv("OPENAI_MAX_RETRIES", "5")
	os.Setenv("OPENAI_RETRY_DELAY", "3s")
	os.Setenv("ANKI_CONNECT_URL", "http://localhost:9999")
	os.Setenv("ANKI_CONNECT_KEY", "secret")
	os.Setenv("PROMPTS_PATH", "/etc/ankiword/prompts")
	os.Setenv("ANKIWORD_MAX_RETRIES", "5")
	os.Setenv("ANKIWORD_DECK", "Svenska")
	os.Setenv("ANKIWORD_TARGET_LANG", "English")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.OpenAIKey != "test-key" {
		t.Errorf("OpenAIKey = %s, want test-key", cfg.OpenAIKey)
	}
	if cfg.ChatModel != "gpt-4" {
		t.Errorf("ChatModel = %s, want gpt-4", cfg.ChatModel)
	}
	if cfg.Timeout != 60*time.Second {
		t.Errorf("Timeout = %v, want 60s", cfg.Timeout)
	}
	if cfg.LLMRetries != 5 {
		t.Errorf("LLMRetries = %d, want 5", cfg.LLMRetries)
	}
	if cfg.RetryDelay != 3*time.Second {
		t.Errorf("RetryDelay = %v, want 3s", cfg.RetryDelay)
	}
	if cfg.AnkiConnectURL != "http://localhost:9999" {
		t.Errorf("AnkiConnectURL = %s, want http://localhost:9999", cfg.AnkiConnectURL)
	}
	if cfg.AnkiConnectKey != "secret" {
		t.Errorf("AnkiConnectKey = %s, want secret", cfg.AnkiConnectKey)
	}
	if cfg.PromptsPath != "/etc/ankiword/prompts" {
		t.Errorf("PromptsPath = %s, want /etc/ankiword/prompts", cfg.PromptsPath)
	}
	if cfg.MaxRetries != 5 {
		t.Errorf("MaxRetries = %d, want 5", cfg.MaxRetries)
	}
	if cfg.DefaultDeck != "Svenska" {
		t.Errorf("DefaultDeck = %s, want Svenska", cfg.DefaultDeck)
	}
	if cfg.DefaultLang != "English" {
		t.Errorf("DefaultLang = %s, want English", cfg.DefaultLang)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	os.Clearenv()
	os.Setenv("ANKIWORD_MAX_RETRIES", "not-a-number")
	os.Setenv("OPENAI_TIMEOUT", "not-a-duration")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want default 3 for unparseable value", cfg.MaxRetries)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want default 30s for unparseable value", cfg.Timeout)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid defaults", func(c *Config) {}, false},
		{"zero max retries", func(c *Config) { c.MaxRetries = 0 }, true},
		{"excessive max retries", func(c *Config) { c.MaxRetries = 11 }, true},
		{"negative llm retries", func(c *Config) { c.LLMRetries = -1 }, true},
		{"empty anki url", func(c *Config) { c.AnkiConnectURL = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() failed: %v", err)
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
