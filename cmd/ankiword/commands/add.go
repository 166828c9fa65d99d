// ABOUTME: CLI command to classify a word and file a flashcard
// ABOUTME: Runs the full route-verify-write pipeline for one word
package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/ankiword/internal/core"
	"github.com/harper/ankiword/internal/models"
	"github.com/joho/godotenv"
)

var (
	addDeck string
	addLang string
)

// NewAddCmd creates the add command
func NewAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <word>",
		Short: "Add a word to Anki as a flashcard",
		Long: `Add a word to Anki as a flashcard.

The word is classified (noun, adjective, verb, phrase, or fallback),
a card is generated and verified, and the result is written to Anki
through AnkiConnect. Duplicates are reported, not treated as errors.

Examples:
  ankiword add hund
  ankiword add --deck swedish "att springa"
  ankiword add --target-lang German Hund`,
		Args: cobra.ExactArgs(1),
		RunE: runAdd,
	}

	cmd.Flags().StringVar(&addDeck, "deck", "", "Deck to add the card to (default from config)")
	cmd.Flags().StringVar(&addLang, "target-lang", "", "Target language (default from config)")

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	word := strings.TrimSpace(args[0])
	if word == "" {
		return fmt.Errorf("no word provided")
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	deck := addDeck
	if deck == "" {
		deck = a.cfg.DefaultDeck
	}
	targetLang := addLang
	if targetLang == "" {
		targetLang = a.cfg.DefaultLang
	}

	outcome, err := a.pipeline.AddWord(cmd.Context(), word, deck, targetLang)
	if err != nil {
		return err
	}

	return printOutcome(cmd, outcome)
}

func printOutcome(cmd *cobra.Command, outcome *core.Outcome) error {
	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(outcome, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		if outcome.Failure != "" {
			return fmt.Errorf("add %q failed", outcome.Word)
		}
		return nil
	}

	if verbose {
		for _, event := range outcome.Trace {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", event)
		}
	}

	switch {
	case outcome.Failure != "":
		fmt.Fprintf(cmd.OutOrStdout(), "✗ %s\n", outcome.Failure)
		return fmt.Errorf("add %q failed", outcome.Word)
	case outcome.Duplicate:
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "Already in deck %q: %q (%s)\n",
				outcome.Deck, outcome.Word, models.VariantName(outcome.Card))
		}
	default:
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Added %q to %q (%s, note %d)\n",
				outcome.Word, outcome.Deck, models.VariantName(outcome.Card), outcome.NoteID)
		}
	}
	return nil
}
