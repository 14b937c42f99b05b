package srs

import (
	"fmt"
	"time"
)

// Scheduler computes spaced-repetition scheduling decisions. It is pure:
// Review never mutates its input, performs no I/O, and is safe to call
// concurrently for different items.
type Scheduler struct {
	cfg Config
}

// NewScheduler creates a Scheduler from the given config. Zero-value fields
// are filled with defaults; invalid values return an error.
func NewScheduler(cfg Config) (*Scheduler, error) {
	cfg = cfg.normalized()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Scheduler{cfg: cfg}, nil
}

// Config returns the effective (normalized) configuration.
func (s *Scheduler) Config() Config {
	return s.cfg
}

// Review applies a graded review to the state at the given time and returns
// the new state. The input state is not mutated.
//
// An invalid grade or an input state violating the package invariants is
// rejected before any field is touched; the returned state is then the zero
// value and must not be persisted.
func (s *Scheduler) Review(state ReviewState, grade Grade, now time.Time) (ReviewState, error) {
	if !grade.IsValid() {
		return ReviewState{}, fmt.Errorf("%w: %d", ErrInvalidGrade, int(grade))
	}
	if err := state.Validate(); err != nil {
		return ReviewState{}, err
	}

	rs := state
	rs.TotalReviews++
	reviewedAt := now
	rs.LastReviewedAt = &reviewedAt

	outcome := grade.Outcome()
	var next time.Time

	switch state.State {
	case StateNew:
		// Any first grade moves the item into Learning; an item never jumps
		// straight to Review.
		rs.State = StateLearning
		rs.LearningStep = 0
		next = now.Add(s.cfg.LearningSteps[0])

	case StateLearning:
		next = s.stepThrough(&rs, outcome, now, s.cfg.LearningSteps, false)

	case StateReview:
		next = s.reviewPhase(&rs, outcome, now)

	case StateRelearning:
		next = s.stepThrough(&rs, outcome, now, s.cfg.RelearningSteps, true)
	}

	rs.NextReviewDate = &next
	return rs, nil
}

// stepThrough advances an item through its Learning or Relearning steps.
// relearn selects the reduced re-graduation interval on the way out.
func (s *Scheduler) stepThrough(rs *ReviewState, outcome Outcome, now time.Time, steps []time.Duration, relearn bool) time.Time {
	if outcome == OutcomeFail {
		rs.LearningStep = 0
		return now.Add(steps[0])
	}

	step := rs.LearningStep + 1
	if step >= len(steps) {
		return s.graduate(rs, outcome, now, relearn)
	}
	rs.LearningStep = step
	return now.Add(steps[step])
}

// graduate moves an item out of the step sequence into Review.
func (s *Scheduler) graduate(rs *ReviewState, outcome Outcome, now time.Time, relearn bool) time.Time {
	rs.State = StateReview
	rs.LearningStep = GraduatedStep
	rs.Repetitions = 1

	interval := s.cfg.GraduatingIntervalDays
	switch {
	case relearn:
		interval = s.cfg.RegraduationIntervalDays
	case outcome == OutcomeEasy:
		interval = s.cfg.EasyIntervalDays
	}

	rs.IntervalDays = s.clampInterval(interval)
	return now.Add(daysToDuration(rs.IntervalDays))
}

// reviewPhase handles outcomes for items in long-interval Review.
func (s *Scheduler) reviewPhase(rs *ReviewState, outcome Outcome, now time.Time) time.Time {
	if outcome == OutcomeFail {
		// Lapse: back to remedial steps, with an ease penalty.
		rs.State = StateRelearning
		rs.Lapses++
		rs.Repetitions = 0
		rs.LearningStep = 0
		rs.EaseFactor = clampEase(rs.EaseFactor - s.cfg.LapseEasePenalty)
		return now.Add(s.cfg.RelearningSteps[0])
	}

	rs.Repetitions++
	interval := rs.IntervalDays * rs.EaseFactor
	if outcome == OutcomeEasy {
		interval *= s.cfg.EaseBonus
		rs.EaseFactor = clampEase(rs.EaseFactor + s.cfg.EasyEaseReward)
	}
	rs.IntervalDays = s.clampInterval(interval)
	return now.Add(daysToDuration(rs.IntervalDays))
}

// clampInterval bounds a Review interval to [1, MaxIntervalDays] days.
// The lower bound keeps a zero-interval record from scheduling an immediate
// re-review loop.
func (s *Scheduler) clampInterval(days float64) float64 {
	if days < 1 {
		return 1
	}
	if days > s.cfg.MaxIntervalDays {
		return s.cfg.MaxIntervalDays
	}
	return days
}

func clampEase(ease float64) float64 {
	if ease < MinEase {
		return MinEase
	}
	return ease
}

func daysToDuration(days float64) time.Duration {
	return time.Duration(days * 24 * float64(time.Hour))
}
