// ABOUTME: History journal operations for SQLite
// ABOUTME: Records every add-word outcome and lists recent additions
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Outcome values recorded in the journal
const (
	OutcomeCreated   = "created"
	OutcomeDuplicate = "duplicate"
	OutcomeFailed    = "failed"
)

// Entry is one recorded add-word request
type Entry struct {
	ID          string
	Word        string
	Deck        string
	TargetLang  string
	Category    string // card variant, empty on failure
	Outcome     string
	NoteID      int64 // backend note id, 0 unless created
	Explanation string
	CreatedAt   time.Time
}

// HistoryStore handles journal persistence
type HistoryStore struct {
	db *DB
}

// NewHistoryStore creates a new HistoryStore
func NewHistoryStore(db *DB) *HistoryStore {
	return &HistoryStore{db: db}
}

// Record saves an entry, assigning an id and timestamp when unset
func (s *HistoryStore) Record(entry *Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	if !validOutcome(entry.Outcome) {
		return fmt.Errorf("invalid outcome %q", entry.Outcome)
	}

	_, err := s.db.Exec(`
		INSERT INTO additions (id, word, deck, target_lang, category, outcome, note_id, explanation, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.Word, entry.Deck, entry.TargetLang, nullString(entry.Category),
		entry.Outcome, entry.NoteID, nullString(entry.Explanation), entry.CreatedAt)

	return err
}

// Recent returns the newest entries, most recent first
func (s *HistoryStore) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
		SELECT id, word, deck, target_lang, category, outcome, note_id, explanation, created_at
		FROM additions
		ORDER BY created_at DESC, id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanEntries(rows)
}

// RecentByDeck returns the newest entries for one deck
func (s *HistoryStore) RecentByDeck(deck string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
		SELECT id, word, deck, target_lang, category, outcome, note_id, explanation, created_at
		FROM additions
		WHERE deck = ?
		ORDER BY created_at DESC, id
		LIMIT ?
	`, deck, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanEntries(rows)
}

// CountByOutcome returns how many entries carry each outcome
func (s *HistoryStore) CountByOutcome() (map[string]int, error) {
	rows, err := s.db.Query(`SELECT outcome, COUNT(*) FROM additions GROUP BY outcome`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[string]int)
	for rows.Next() {
		var outcome string
		var n int
		if err := rows.Scan(&outcome, &n); err != nil {
			return nil, err
		}
		counts[outcome] = n
	}
	return counts, rows.Err()
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var (
			entry       Entry
			category    sql.NullString
			explanation sql.NullString
		)
		if err := rows.Scan(&entry.ID, &entry.Word, &entry.Deck, &entry.TargetLang,
			&category, &entry.Outcome, &entry.NoteID, &explanation, &entry.CreatedAt); err != nil {
			return nil, err
		}
		if category.Valid {
			entry.Category = category.String
		}
		if explanation.Valid {
			entry.Explanation = explanation.String
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func validOutcome(outcome string) bool {
	switch outcome {
	case OutcomeCreated, OutcomeDuplicate, OutcomeFailed:
		return true
	}
	return false
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
