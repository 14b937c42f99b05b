package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mkravets/glossa/internal/practice"
)

// SessionSummary is the persisted shape of a practice session. The live
// rolling window is runtime-only; the trajectory is reconstructable from the
// difficulty_adjustments log.
type SessionSummary struct {
	ID                string              `db:"id"`
	OwnerID           string              `db:"owner_id"`
	CurrentDifficulty practice.Difficulty `db:"current_difficulty"`
	TotalAttempted    int                 `db:"total_attempted"`
	TotalCorrect      int                 `db:"total_correct"`
	TotalIncorrect    int                 `db:"total_incorrect"`
	Active            bool                `db:"active"`
	Rating            string              `db:"rating"`
	StartedAt         time.Time           `db:"started_at"`
	CompletedAt       *time.Time          `db:"completed_at"`
}

// SessionRepo handles database operations for practice sessions.
type SessionRepo struct {
	db *sqlx.DB
}

// Save upserts the session's current summary row.
func (r *SessionRepo) Save(ctx context.Context, s *practice.Session) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO practice_sessions (id, owner_id, current_difficulty,
		        total_attempted, total_correct, total_incorrect,
		        active, rating, started_at, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		        current_difficulty = excluded.current_difficulty,
		        total_attempted = excluded.total_attempted,
		        total_correct = excluded.total_correct,
		        total_incorrect = excluded.total_incorrect,
		        active = excluded.active,
		        rating = excluded.rating,
		        completed_at = excluded.completed_at`,
		s.ID, s.OwnerID, s.CurrentDifficulty,
		s.TotalAttempted, s.TotalCorrect, s.TotalIncorrect,
		s.Active, string(s.Rating), s.StartedAt.UTC(), utcPtr(s.CompletedAt))
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// AppendAdjustment records one difficulty transition. The log is append-only;
// rows are never updated or deleted.
func (r *SessionRepo) AppendAdjustment(ctx context.Context, sessionID string, adj practice.Adjustment) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO difficulty_adjustments
		        (session_id, created_at, from_difficulty, to_difficulty, reason, performance_score)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sessionID, adj.Timestamp.UTC(), adj.From, adj.To, adj.Reason, adj.PerformanceScore)
	if err != nil {
		return fmt.Errorf("append adjustment: %w", err)
	}
	return nil
}

// Adjustments returns a session's difficulty trajectory in order.
func (r *SessionRepo) Adjustments(ctx context.Context, sessionID string) ([]practice.Adjustment, error) {
	var out []practice.Adjustment
	err := r.db.SelectContext(ctx, &out,
		`SELECT created_at, from_difficulty, to_difficulty, reason, performance_score
		 FROM difficulty_adjustments WHERE session_id = ? ORDER BY id ASC`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("select adjustments: %w", err)
	}
	return out, nil
}

// Get returns one session summary, or ErrNotFound.
func (r *SessionRepo) Get(ctx context.Context, id string) (*SessionSummary, error) {
	var s SessionSummary
	err := r.db.GetContext(ctx, &s, `SELECT * FROM practice_sessions WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: session %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &s, nil
}

// LastCompleted returns the owner's most recently completed session, used to
// seed the next session's starting difficulty. ErrNotFound when the owner
// has no completed sessions.
func (r *SessionRepo) LastCompleted(ctx context.Context, ownerID string) (*SessionSummary, error) {
	var s SessionSummary
	err := r.db.GetContext(ctx, &s,
		`SELECT * FROM practice_sessions
		 WHERE owner_id = ? AND active = 0
		 ORDER BY completed_at DESC LIMIT 1`,
		ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no completed session for %s", ErrNotFound, ownerID)
	}
	if err != nil {
		return nil, fmt.Errorf("last completed session: %w", err)
	}
	return &s, nil
}
