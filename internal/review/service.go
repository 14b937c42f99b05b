// Package review applies graded reviews to scheduling records. It is the
// only writer of review state: it loads the current record, runs the
// scheduler, and persists the result under a per-item lock so two concurrent
// reviews of the same item cannot interleave. Reviews of different items
// proceed in parallel with no coordination.
package review

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"os"
	"sync"
	"time"

	"github.com/mkravets/glossa/internal/srs"
	"github.com/mkravets/glossa/internal/store"
)

// ErrNotTracked is returned when grading an item that has not entered the
// learner's curriculum. Callers call Track first.
var ErrNotTracked = errors.New("review: item not tracked")

// lockStripes bounds lock memory: items hash onto a fixed set of mutexes
// instead of one mutex per item. Two items sharing a stripe serialize
// needlessly but never deadlock.
const lockStripes = 64

// StateStore is the persistence the service needs. *store.ReviewRepo
// implements it.
type StateStore interface {
	Get(ctx context.Context, ownerID, itemID string) (srs.ReviewState, error)
	Upsert(ctx context.Context, ownerID, itemID string, rs srs.ReviewState) error
}

// EventLog receives the review audit trail. store.EventRepo implements it.
type EventLog interface {
	AppendReview(ctx context.Context, data store.ReviewEventData) error
}

// Service coordinates the scheduler and the store.
type Service struct {
	sched  *srs.Scheduler
	states StateStore
	events EventLog
	locks  [lockStripes]sync.Mutex
}

// NewService creates a review service. events may be nil to disable the
// audit trail.
func NewService(sched *srs.Scheduler, states StateStore, events EventLog) *Service {
	return &Service{sched: sched, states: states, events: events}
}

// Track registers an item into the learner's curriculum with a fresh record.
// Tracking an already-tracked item is a no-op, so deck re-imports cannot
// reset review progress.
func (s *Service) Track(ctx context.Context, ownerID, itemID string) error {
	mu := s.lockFor(ownerID, itemID)
	mu.Lock()
	defer mu.Unlock()

	_, err := s.states.Get(ctx, ownerID, itemID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("track: %w", err)
	}
	if err := s.states.Upsert(ctx, ownerID, itemID, srs.NewReviewState()); err != nil {
		return fmt.Errorf("track: %w", err)
	}
	return nil
}

// GradeItem applies one graded review: load, schedule, save. The write
// happens in full or not at all; on any error the stored record is the one
// from before the call.
func (s *Service) GradeItem(ctx context.Context, ownerID, itemID string, grade srs.Grade, now time.Time) (srs.ReviewState, error) {
	mu := s.lockFor(ownerID, itemID)
	mu.Lock()
	defer mu.Unlock()

	before, err := s.states.Get(ctx, ownerID, itemID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return srs.ReviewState{}, fmt.Errorf("%w: %s", ErrNotTracked, itemID)
		}
		return srs.ReviewState{}, fmt.Errorf("load state: %w", err)
	}

	after, err := s.sched.Review(before, grade, now)
	if err != nil {
		if errors.Is(err, srs.ErrInvariant) || errors.Is(err, srs.ErrInvalidState) {
			// A stored record violating scheduler invariants is a programmer
			// error somewhere in the write path; make it visible.
			fmt.Fprintf(os.Stderr, "error: corrupt review state for item %s: %v\n", itemID, err)
		}
		return srs.ReviewState{}, err
	}

	if err := s.states.Upsert(ctx, ownerID, itemID, after); err != nil {
		return srs.ReviewState{}, fmt.Errorf("save state: %w", err)
	}

	if s.events != nil {
		data := store.ReviewEventData{
			OwnerID:      ownerID,
			ItemID:       itemID,
			Grade:        int(grade),
			StateBefore:  before.State,
			StateAfter:   after.State,
			IntervalDays: after.IntervalDays,
			EaseFactor:   after.EaseFactor,
		}
		// The review is already applied; a failed audit append is a warning,
		// not a failure.
		if logErr := s.events.AppendReview(ctx, data); logErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to log review event: %v\n", logErr)
		}
	}

	return after, nil
}

func (s *Service) lockFor(ownerID, itemID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(ownerID))
	h.Write([]byte{0})
	h.Write([]byte(itemID))
	return &s.locks[h.Sum32()%lockStripes]
}
