package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mkravets/glossa/internal/srs"
)

// StudyItem is a scheduling record joined with the item it schedules,
// the shape the study queue works with.
type StudyItem struct {
	ItemID string   `db:"item_id"`
	Kind   ItemKind `db:"kind"`
	Front  string   `db:"front"`
	Back   string   `db:"back"`
	srs.ReviewState
}

// ReviewRepo handles database operations for per-item scheduling records.
type ReviewRepo struct {
	db *sqlx.DB
}

// Get returns the scheduling record for one (owner, item) pair.
// An untracked item returns ErrNotFound; the caller synthesizes a fresh
// record before the first review.
func (r *ReviewRepo) Get(ctx context.Context, ownerID, itemID string) (srs.ReviewState, error) {
	var rs srs.ReviewState
	err := r.db.GetContext(ctx, &rs,
		`SELECT state, ease_factor, interval_days, repetitions, learning_step,
		        lapses, total_reviews, next_review_date, last_reviewed_at
		 FROM review_states WHERE owner_id = ? AND item_id = ?`,
		ownerID, itemID)
	if errors.Is(err, sql.ErrNoRows) {
		return srs.ReviewState{}, fmt.Errorf("%w: review state for item %s", ErrNotFound, itemID)
	}
	if err != nil {
		return srs.ReviewState{}, fmt.Errorf("get review state: %w", err)
	}
	return rs, nil
}

// Upsert writes the scheduling record for one (owner, item) pair. It is
// idempotent: re-saving an unchanged record leaves the row equivalent.
func (r *ReviewRepo) Upsert(ctx context.Context, ownerID, itemID string, rs srs.ReviewState) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO review_states (owner_id, item_id, state, ease_factor, interval_days,
		        repetitions, learning_step, lapses, total_reviews,
		        next_review_date, last_reviewed_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (owner_id, item_id) DO UPDATE SET
		        state = excluded.state,
		        ease_factor = excluded.ease_factor,
		        interval_days = excluded.interval_days,
		        repetitions = excluded.repetitions,
		        learning_step = excluded.learning_step,
		        lapses = excluded.lapses,
		        total_reviews = excluded.total_reviews,
		        next_review_date = excluded.next_review_date,
		        last_reviewed_at = excluded.last_reviewed_at,
		        updated_at = excluded.updated_at`,
		ownerID, itemID, rs.State, rs.EaseFactor, rs.IntervalDays,
		rs.Repetitions, rs.LearningStep, rs.Lapses, rs.TotalReviews,
		utcPtr(rs.NextReviewDate), utcPtr(rs.LastReviewedAt), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("upsert review state: %w", err)
	}
	return nil
}

// Due returns the owner's items whose review date has elapsed, oldest
// overdue first. New items never appear here. limit <= 0 means no limit.
func (r *ReviewRepo) Due(ctx context.Context, ownerID string, now time.Time, limit int) ([]StudyItem, error) {
	if limit <= 0 {
		limit = -1 // SQLite: negative LIMIT means unlimited
	}
	var out []StudyItem
	err := r.db.SelectContext(ctx, &out,
		`SELECT rs.item_id, i.kind, i.front, i.back,
		        rs.state, rs.ease_factor, rs.interval_days, rs.repetitions,
		        rs.learning_step, rs.lapses, rs.total_reviews,
		        rs.next_review_date, rs.last_reviewed_at
		 FROM review_states rs
		 JOIN items i ON i.id = rs.item_id
		 WHERE rs.owner_id = ? AND rs.state != ? AND rs.next_review_date <= ?
		 ORDER BY rs.next_review_date ASC
		 LIMIT ?`,
		ownerID, srs.StateNew, now.UTC(), limit)
	if err != nil {
		return nil, fmt.Errorf("select due: %w", err)
	}
	return out, nil
}

// New returns the owner's not-yet-studied items in stable insertion order,
// so a re-run of the same queue resumes where it left off.
func (r *ReviewRepo) New(ctx context.Context, ownerID string, limit int) ([]StudyItem, error) {
	if limit <= 0 {
		limit = -1
	}
	var out []StudyItem
	err := r.db.SelectContext(ctx, &out,
		`SELECT rs.item_id, i.kind, i.front, i.back,
		        rs.state, rs.ease_factor, rs.interval_days, rs.repetitions,
		        rs.learning_step, rs.lapses, rs.total_reviews,
		        rs.next_review_date, rs.last_reviewed_at
		 FROM review_states rs
		 JOIN items i ON i.id = rs.item_id
		 WHERE rs.owner_id = ? AND rs.state = ?
		 ORDER BY i.position ASC
		 LIMIT ?`,
		ownerID, srs.StateNew, limit)
	if err != nil {
		return nil, fmt.Errorf("select new: %w", err)
	}
	return out, nil
}

// CountDue returns how many items are due for the owner at now.
func (r *ReviewRepo) CountDue(ctx context.Context, ownerID string, now time.Time) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM review_states
		 WHERE owner_id = ? AND state != ? AND next_review_date <= ?`,
		ownerID, srs.StateNew, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("count due: %w", err)
	}
	return n, nil
}

// CountByState returns the owner's item counts per lifecycle phase.
func (r *ReviewRepo) CountByState(ctx context.Context, ownerID string) (map[srs.State]int, error) {
	rows := []struct {
		State srs.State `db:"state"`
		N     int       `db:"n"`
	}{}
	err := r.db.SelectContext(ctx, &rows,
		`SELECT state, COUNT(*) AS n FROM review_states WHERE owner_id = ? GROUP BY state`,
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("count by state: %w", err)
	}
	out := make(map[srs.State]int, len(rows))
	for _, row := range rows {
		out[row.State] = row.N
	}
	return out, nil
}

// AverageEase returns the owner's mean ease factor, or the default ease when
// no items are tracked yet.
func (r *ReviewRepo) AverageEase(ctx context.Context, ownerID string) (float64, error) {
	var avg float64
	err := r.db.GetContext(ctx, &avg,
		`SELECT COALESCE(AVG(ease_factor), ?) FROM review_states WHERE owner_id = ?`,
		srs.DefaultEase, ownerID)
	if err != nil {
		return 0, fmt.Errorf("average ease: %w", err)
	}
	return avg, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
