package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mkravets/glossa/internal/srs"
)

// ReviewEventData captures one graded review for the audit log.
type ReviewEventData struct {
	OwnerID      string    `db:"owner_id"`
	ItemID       string    `db:"item_id"`
	Grade        int       `db:"grade"`
	StateBefore  srs.State `db:"state_before"`
	StateAfter   srs.State `db:"state_after"`
	IntervalDays float64   `db:"interval_days"`
	EaseFactor   float64   `db:"ease_factor"`
}

// LLMRequestEventData captures one LLM API call for the audit log.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMUsageRow aggregates LLM token usage for one model.
type LLMUsageRow struct {
	Model        string `db:"model"`
	Calls        int    `db:"calls"`
	InputTokens  int    `db:"input_tokens"`
	OutputTokens int    `db:"output_tokens"`
	AvgLatencyMs int64  `db:"avg_latency_ms"`
}

// EventRepo provides append access to domain events.
type EventRepo interface {
	// AppendReview records a graded review event.
	AppendReview(ctx context.Context, data ReviewEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// CountReviews returns how many reviews the owner has recorded.
	CountReviews(ctx context.Context, ownerID string) (int, error)

	// LLMUsage aggregates token usage per model.
	LLMUsage(ctx context.Context) ([]LLMUsageRow, error)
}

// sequenceCounter manages the monotonic sequence number shared across the
// event tables. Per-table auto-increment IDs can't establish cross-type
// ordering (did the LLM call come before or after the review?), so a single
// counter assigns an increasing sequence to every event regardless of type.
// The mutex serializes within the process; the RETURNING clause makes the
// increment atomic at the database level.
type sequenceCounter struct {
	mu sync.Mutex
	db *sqlx.DB
}

// newSequenceCounter creates a counter and ensures the tracking table exists.
func newSequenceCounter(db *sqlx.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

type eventRepo struct {
	db  *sqlx.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendReview(ctx context.Context, data ReviewEventData) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO review_events
		        (sequence, owner_id, item_id, grade, state_before, state_after,
		         interval_days, ease_factor, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seq, data.OwnerID, data.ItemID, data.Grade, data.StateBefore, data.StateAfter,
		data.IntervalDays, data.EaseFactor, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("append review event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO llm_events
		        (sequence, provider, model, purpose, input_tokens, output_tokens,
		         latency_ms, success, error_message, request_body, response_body, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seq, data.Provider, data.Model, data.Purpose, data.InputTokens, data.OutputTokens,
		data.LatencyMs, data.Success, data.ErrorMessage, data.RequestBody, data.ResponseBody,
		time.Now().UTC())
	if err != nil {
		return fmt.Errorf("append llm event: %w", err)
	}
	return nil
}

func (r *eventRepo) LLMUsage(ctx context.Context) ([]LLMUsageRow, error) {
	var rows []LLMUsageRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT model,
		        COUNT(*) AS calls,
		        SUM(input_tokens) AS input_tokens,
		        SUM(output_tokens) AS output_tokens,
		        CAST(AVG(latency_ms) AS INTEGER) AS avg_latency_ms
		 FROM llm_events
		 GROUP BY model
		 ORDER BY calls DESC`)
	if err != nil {
		return nil, fmt.Errorf("llm usage: %w", err)
	}
	return rows, nil
}

func (r *eventRepo) CountReviews(ctx context.Context, ownerID string) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM review_events WHERE owner_id = ?`, ownerID)
	if err != nil {
		return 0, fmt.Errorf("count review events: %w", err)
	}
	return n, nil
}
