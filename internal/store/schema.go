package store

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Timestamps are stored as TEXT in RFC 3339 (second precision or better);
// ease factors and intervals as REAL so rounding does not compound over
// hundreds of reviews.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS items (
		id         TEXT PRIMARY KEY,
		kind       TEXT NOT NULL CHECK (kind IN ('vocabulary', 'grammar', 'card')),
		front      TEXT NOT NULL,
		back       TEXT NOT NULL DEFAULT '',
		deck       TEXT NOT NULL DEFAULT '',
		position   INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_items_kind_front ON items (kind, deck, front)`,

	`CREATE TABLE IF NOT EXISTS review_states (
		owner_id         TEXT NOT NULL,
		item_id          TEXT NOT NULL REFERENCES items (id) ON DELETE CASCADE,
		state            TEXT NOT NULL,
		ease_factor      REAL NOT NULL,
		interval_days    REAL NOT NULL,
		repetitions      INTEGER NOT NULL,
		learning_step    INTEGER NOT NULL,
		lapses           INTEGER NOT NULL,
		total_reviews    INTEGER NOT NULL,
		next_review_date TIMESTAMP,
		last_reviewed_at TIMESTAMP,
		updated_at       TIMESTAMP NOT NULL,
		PRIMARY KEY (owner_id, item_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_review_states_due ON review_states (owner_id, next_review_date)`,

	`CREATE TABLE IF NOT EXISTS practice_sessions (
		id                 TEXT PRIMARY KEY,
		owner_id           TEXT NOT NULL,
		current_difficulty TEXT NOT NULL,
		total_attempted    INTEGER NOT NULL,
		total_correct      INTEGER NOT NULL,
		total_incorrect    INTEGER NOT NULL,
		active             INTEGER NOT NULL,
		rating             TEXT NOT NULL DEFAULT '',
		started_at         TIMESTAMP NOT NULL,
		completed_at       TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_practice_sessions_owner ON practice_sessions (owner_id, started_at)`,

	`CREATE TABLE IF NOT EXISTS difficulty_adjustments (
		id                INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id        TEXT NOT NULL REFERENCES practice_sessions (id) ON DELETE CASCADE,
		created_at        TIMESTAMP NOT NULL,
		from_difficulty   TEXT NOT NULL,
		to_difficulty     TEXT NOT NULL,
		reason            TEXT NOT NULL,
		performance_score REAL NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS review_events (
		sequence      INTEGER PRIMARY KEY,
		owner_id      TEXT NOT NULL,
		item_id       TEXT NOT NULL,
		grade         INTEGER NOT NULL,
		state_before  TEXT NOT NULL,
		state_after   TEXT NOT NULL,
		interval_days REAL NOT NULL,
		ease_factor   REAL NOT NULL,
		created_at    TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_review_events_owner ON review_events (owner_id, created_at)`,

	`CREATE TABLE IF NOT EXISTS llm_events (
		sequence      INTEGER PRIMARY KEY,
		provider      TEXT NOT NULL,
		model         TEXT NOT NULL,
		purpose       TEXT NOT NULL,
		input_tokens  INTEGER NOT NULL,
		output_tokens INTEGER NOT NULL,
		latency_ms    INTEGER NOT NULL,
		success       INTEGER NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		request_body  TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT '',
		created_at    TIMESTAMP NOT NULL
	)`,
}

// migrate creates all tables and indexes. Statements are idempotent so Open
// can run them unconditionally.
func migrate(db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("schema: %w", err)
		}
	}
	return nil
}
