// ABOUTME: CLI command to list recently added words
// ABOUTME: Reads the local history journal, table or JSON output
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/ankiword/internal/storage/sqlite"
)

var (
	historyLimit int
	historyDeck  string
)

// NewHistoryCmd creates the history command
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently added words",
		Long: `List recently added words with their outcome.

Each add request is journaled locally with its outcome: created,
duplicate, or failed.

Examples:
  ankiword history
  ankiword history --limit 50
  ankiword history --deck swedish
  ankiword history --format json`,
		RunE: runHistory,
	}

	cmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum entries to show")
	cmd.Flags().StringVar(&historyDeck, "deck", "", "Only show entries for this deck")

	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(historyLimit, "limit"); err != nil {
		return err
	}

	db, err := sqlite.Open(sqlite.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("opening history journal: %w", err)
	}
	defer func() { _ = db.Close() }()

	store := sqlite.NewHistoryStore(db)

	var entries []sqlite.Entry
	if historyDeck != "" {
		entries, err = store.RecentByDeck(historyDeck, historyLimit)
	} else {
		entries, err = store.Recent(historyLimit)
	}
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}

	if len(entries) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No additions recorded\n")
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "WORD\tDECK\tOUTCOME\tCATEGORY\tNOTE\tWHEN\n")
	fmt.Fprintf(w, "----\t----\t-------\t--------\t----\t----\n")

	for _, entry := range entries {
		category := entry.Category
		if category == "" {
			category = "-"
		}
		note := "-"
		if entry.NoteID != 0 {
			note = fmt.Sprintf("%d", entry.NoteID)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			truncate(entry.Word, 30),
			truncate(entry.Deck, 20),
			entry.Outcome,
			category,
			note,
			formatTime(entry.CreatedAt))
	}
	_ = w.Flush()

	if !quiet {
		counts, err := store.CountByOutcome()
		if err == nil {
			fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d created, %d duplicate, %d failed\n",
				counts[sqlite.OutcomeCreated], counts[sqlite.OutcomeDuplicate], counts[sqlite.OutcomeFailed])
		}
	}

	return nil
}
