// ABOUTME: Centralized configuration for the ankiword pipeline
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the flashcard pipeline
type Config struct {
	// OpenAI settings
	OpenAIKey  string
	ChatModel  string
	Timeout    time.Duration
	LLMRetries int
	RetryDelay time.Duration

	// AnkiConnect settings
	AnkiConnectURL string
	AnkiConnectKey string

	// Pipeline settings
	PromptsPath string
	MaxRetries  int // verification retries per add-word request
	DefaultDeck string
	DefaultLang string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		ChatModel:      getEnv("ANKIWORD_OPENAI_MODEL", "gpt-4o-mini"),
		Timeout:        getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		LLMRetries:     getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:     getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		AnkiConnectURL: getEnv("ANKI_CONNECT_URL", "http://127.0.0.1:8765"),
		AnkiConnectKey: os.Getenv("ANKI_CONNECT_KEY"),
		PromptsPath:    getEnv("PROMPTS_PATH", "./prompts"),
		MaxRetries:     getEnvInt("ANKIWORD_MAX_RETRIES", 3),
		DefaultDeck:    getEnv("ANKIWORD_DECK", "test"),
		DefaultLang:    getEnv("ANKIWORD_TARGET_LANG", "Swedish"),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.MaxRetries < 1 || c.MaxRetries > 10 {
		return fmt.Errorf("ANKIWORD_MAX_RETRIES must be 1-10, got %d", c.MaxRetries)
	}
	if c.LLMRetries < 0 || c.LLMRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.LLMRetries)
	}
	if c.AnkiConnectURL == "" {
		return fmt.Errorf("ANKI_CONNECT_URL must not be empty")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
