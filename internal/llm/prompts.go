// ABOUTME: System prompt loading for the router and verifier capabilities
// ABOUTME: Missing prompt files are a startup-fatal condition, not per-request
package llm

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Prompt file names expected under the prompts directory
const (
	RouterPromptFile   = "router.txt"
	VerifierPromptFile = "verifier.txt"
)

// Prompts holds the system prompts loaded at startup
type Prompts struct {
	Router   string
	Verifier string
}

// LoadPrompts reads the router and verifier system prompts from dir.
// A missing or unreadable file fails construction of the pipeline.
func LoadPrompts(dir string) (*Prompts, error) {
	router, err := LoadPrompt(dir, RouterPromptFile)
	if err != nil {
		return nil, err
	}
	verifier, err := LoadPrompt(dir, VerifierPromptFile)
	if err != nil {
		return nil, err
	}
	return &Prompts{Router: router, Verifier: verifier}, nil
}

// LoadPrompt reads a single prompt file and trims surrounding whitespace
func LoadPrompt(dir, filename string) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("prompts directory must be set")
	}
	path := filepath.Join(dir, filename)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading system prompt %s: %w", path, err)
	}
	return strings.TrimSpace(string(data)), nil
}
