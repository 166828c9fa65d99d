// ABOUTME: SQLite schema for the add-word history journal
// ABOUTME: One row per top-level request with its final outcome
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- History of add-word requests and their outcomes
CREATE TABLE IF NOT EXISTS additions (
    id TEXT PRIMARY KEY,
    word TEXT NOT NULL,
    deck TEXT NOT NULL,
    target_lang TEXT NOT NULL,
    category TEXT,
    outcome TEXT NOT NULL,
    note_id INTEGER DEFAULT 0,
    explanation TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Indexes for efficient querying
CREATE INDEX IF NOT EXISTS idx_additions_deck ON additions(deck);
CREATE INDEX IF NOT EXISTS idx_additions_outcome ON additions(outcome);
CREATE INDEX IF NOT EXISTS idx_additions_created ON additions(created_at);
`
