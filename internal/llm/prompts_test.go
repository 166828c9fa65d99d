// ABOUTME: Tests for prompt file loading
// ABOUTME: Verifies trimming, missing file errors, and full Prompts loading

package llm

import (
	"os"
	"path/filepath"
	"testing"
)

func writePrompt(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("writing prompt file: %v", err)
	}
}

func TestLoadPrompt(t *testing.T) {
	dir := t.TempDir()
	writePrompt(t, dir, "router.txt", "  You are a router.\n\n")

	got, err := LoadPrompt(dir, "router.txt")
	if err != nil {
		t.Fatalf("LoadPrompt() error = %v", err)
	}
	if got != "You are a router." {
		t.Errorf("LoadPrompt() = %q, want trimmed content", got)
	}
}

func TestLoadPrompt_MissingFile(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadPrompt(dir, "router.txt"); err == nil {
		t.Error("LoadPrompt() should fail for missing file")
	}
}

func TestLoadPrompt_EmptyDir(t *testing.T) {
	if _, err := LoadPrompt("", "router.txt"); err == nil {
		t.Error("LoadPrompt() should fail when directory is unset")
	}
}

func TestLoadPrompts(t *testing.T) {
	dir := t.TempDir()
	writePrompt(t, dir, RouterPromptFile, "router prompt")
	writePrompt(t, dir, VerifierPromptFile, "verifier prompt")

	p, err := LoadPrompts(dir)
	if err != nil {
		t.Fatalf("LoadPrompts() error = %v", err)
	}
	if p.Router != "router prompt" {
		t.Errorf("Router = %q, want %q", p.Router, "router prompt")
	}
	if p.Verifier != "verifier prompt" {
		t.Errorf("Verifier = %q, want %q", p.Verifier, "verifier prompt")
	}
}

func TestLoadPrompts_MissingVerifier(t *testing.T) {
	dir := t.TempDir()
	writePrompt(t, dir, RouterPromptFile, "router prompt")

	if _, err := LoadPrompts(dir); err == nil {
		t.Error("LoadPrompts() should fail when verifier prompt is missing")
	}
}
