package srs

import (
	"fmt"
	"time"
)

// State is an item's position in the review lifecycle.
type State string

const (
	StateNew        State = "new"        // Entered the curriculum, never reviewed.
	StateLearning   State = "learning"   // Working through the short learning steps.
	StateReview     State = "review"     // Graduated; long expanding intervals.
	StateRelearning State = "relearning" // Lapsed out of Review; remedial steps.
)

// IsValid reports whether s is one of the four lifecycle phases.
func (s State) IsValid() bool {
	switch s {
	case StateNew, StateLearning, StateReview, StateRelearning:
		return true
	}
	return false
}

// GraduatedStep is the LearningStep sentinel marking an item that has
// graduated out of the Learning/Relearning steps into Review. It is not a
// step count.
const GraduatedStep = -1

// MinEase is the hard floor for the ease factor. The scheduler clamps ease
// to this floor on write and rejects inputs already below it.
const MinEase = 1.3

// DefaultEase is the ease factor assigned to items entering the curriculum.
const DefaultEase = 2.5

// ReviewState is the durable scheduling record for one (learner, item)
// pair. It is item-agnostic: vocabulary words, grammar concepts and
// imported cards all map to and from this one record.
type ReviewState struct {
	State          State      `json:"state" db:"state"`
	EaseFactor     float64    `json:"ease_factor" db:"ease_factor"`
	IntervalDays   float64    `json:"interval_days" db:"interval_days"`
	Repetitions    int        `json:"repetitions" db:"repetitions"`
	LearningStep   int        `json:"learning_step" db:"learning_step"`
	Lapses         int        `json:"lapses" db:"lapses"`
	TotalReviews   int        `json:"total_reviews" db:"total_reviews"`
	NextReviewDate *time.Time `json:"next_review_date" db:"next_review_date"` // nil only while State=new.
	LastReviewedAt *time.Time `json:"last_reviewed_at" db:"last_reviewed_at"` // nil before first review.
}

// NewReviewState returns the record for an item that has just entered a
// learner's curriculum.
func NewReviewState() ReviewState {
	return ReviewState{
		State:      StateNew,
		EaseFactor: DefaultEase,
	}
}

// IsDue reports whether the item's scheduled review date has passed.
// New items are never due; they surface through the new-item queue instead.
func (rs ReviewState) IsDue(now time.Time) bool {
	if rs.State == StateNew || rs.NextReviewDate == nil {
		return false
	}
	return !now.Before(*rs.NextReviewDate)
}

// Validate checks the structural invariants of the record. A violation is a
// programmer error in the calling layer, surfaced as ErrInvariant or
// ErrInvalidState; the scheduler refuses to "fix" bad input by clamping.
func (rs ReviewState) Validate() error {
	if !rs.State.IsValid() {
		return fmt.Errorf("%w: unknown state %q", ErrInvalidState, rs.State)
	}
	if rs.EaseFactor < MinEase {
		return fmt.Errorf("%w: ease factor %.3f below %.1f", ErrInvariant, rs.EaseFactor, MinEase)
	}
	if rs.IntervalDays < 0 {
		return fmt.Errorf("%w: negative interval %.3f", ErrInvariant, rs.IntervalDays)
	}
	if rs.Repetitions < 0 || rs.Lapses < 0 || rs.TotalReviews < 0 {
		return fmt.Errorf("%w: negative counter", ErrInvariant)
	}
	switch rs.State {
	case StateNew:
		if rs.LearningStep != 0 || rs.Repetitions != 0 {
			return fmt.Errorf("%w: new item with step=%d reps=%d", ErrInvariant, rs.LearningStep, rs.Repetitions)
		}
	case StateReview:
		if rs.LearningStep != GraduatedStep {
			return fmt.Errorf("%w: review item with step=%d, want %d", ErrInvariant, rs.LearningStep, GraduatedStep)
		}
	case StateLearning, StateRelearning:
		if rs.LearningStep < 0 {
			return fmt.Errorf("%w: %s item with step=%d", ErrInvariant, rs.State, rs.LearningStep)
		}
	}
	return nil
}
