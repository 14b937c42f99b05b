package practice

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrSessionComplete is returned when recording against a completed session.
	ErrSessionComplete = errors.New("practice: session already complete")

	// ErrInvalidDifficulty is returned for an unknown difficulty level.
	ErrInvalidDifficulty = errors.New("practice: invalid difficulty")
)

// Adjustment reasons, recorded in the audit log.
const (
	ReasonHighAccuracy = "high-accuracy"
	ReasonLowAccuracy  = "low-accuracy"
)

// Adjustment is one immutable entry in a session's difficulty trajectory.
// The full trajectory must be reconstructable from the log alone.
type Adjustment struct {
	Timestamp        time.Time  `json:"timestamp" db:"created_at"`
	From             Difficulty `json:"from" db:"from_difficulty"`
	To               Difficulty `json:"to" db:"to_difficulty"`
	Reason           string     `json:"reason" db:"reason"`
	PerformanceScore float64    `json:"performance_score" db:"performance_score"`
}

// Config holds the adaptation policy constants. Zero values produce the
// defaults: a 10-result window, step up at 85% accuracy, step down at 40%.
type Config struct {
	WindowSize        int
	StepUpThreshold   float64
	StepDownThreshold float64
}

// DefaultConfig returns the default adaptation policy.
func DefaultConfig() Config {
	return Config{
		WindowSize:        10,
		StepUpThreshold:   0.85,
		StepDownThreshold: 0.40,
	}
}

func (c Config) normalized() Config {
	def := DefaultConfig()
	if c.WindowSize <= 0 {
		c.WindowSize = def.WindowSize
	}
	if c.StepUpThreshold == 0 {
		c.StepUpThreshold = def.StepUpThreshold
	}
	if c.StepDownThreshold == 0 {
		c.StepDownThreshold = def.StepDownThreshold
	}
	return c
}

// Session tracks one adaptive practice session. It is a synchronous state
// machine: Record observes one exercise result at a time and may adjust the
// current difficulty based on the rolling outcome window.
//
// A Session is not safe for concurrent use; callers serialize access per
// session, the same way per-item review updates are serialized.
type Session struct {
	// ID is the UUID for this session.
	ID string

	// OwnerID identifies the learner.
	OwnerID string

	// CurrentDifficulty is the level exercises are generated at right now.
	CurrentDifficulty Difficulty

	// TotalAttempted, TotalCorrect and TotalIncorrect count results since
	// session start, across difficulty changes.
	TotalAttempted int
	TotalCorrect   int
	TotalIncorrect int

	// Adjustments is the append-only difficulty audit log.
	Adjustments []Adjustment

	// Active is true until Complete is called, then false forever.
	Active bool

	// StartedAt is when the session began.
	StartedAt time.Time

	// CompletedAt is set once, by Complete.
	CompletedAt *time.Time

	// Rating is the learner's subjective verdict, set by Complete.
	Rating SubjectiveRating

	cfg    Config
	window []bool
}

// NewSession starts an active session at the given difficulty.
func NewSession(ownerID string, start Difficulty, cfg Config, now time.Time) (*Session, error) {
	if !start.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDifficulty, start)
	}
	cfg = cfg.normalized()
	return &Session{
		ID:                uuid.NewString(),
		OwnerID:           ownerID,
		CurrentDifficulty: start,
		Active:            true,
		StartedAt:         now,
		cfg:               cfg,
		window:            make([]bool, 0, cfg.WindowSize),
	}, nil
}

// Record observes one exercise result. When the rolling window is full and
// its pass rate crosses a threshold, the difficulty steps one level in the
// indicated direction, an Adjustment is appended and returned, and the window
// resets so the next decision is based on fresh results only. At a boundary
// level (Hard on high accuracy, Easy on low) no transition occurs and no
// record is appended.
func (s *Session) Record(correct bool, now time.Time) (*Adjustment, error) {
	if !s.Active {
		return nil, ErrSessionComplete
	}

	s.TotalAttempted++
	if correct {
		s.TotalCorrect++
	} else {
		s.TotalIncorrect++
	}

	s.window = append(s.window, correct)
	if len(s.window) > s.cfg.WindowSize {
		s.window = s.window[1:]
	}
	if len(s.window) < s.cfg.WindowSize {
		return nil, nil
	}

	rate := s.WindowPassRate()
	var to Difficulty
	var reason string
	switch {
	case rate >= s.cfg.StepUpThreshold:
		to = s.CurrentDifficulty.StepUp()
		reason = ReasonHighAccuracy
	case rate <= s.cfg.StepDownThreshold:
		to = s.CurrentDifficulty.StepDown()
		reason = ReasonLowAccuracy
	default:
		return nil, nil
	}
	if to == s.CurrentDifficulty {
		return nil, nil
	}

	adj := Adjustment{
		Timestamp:        now,
		From:             s.CurrentDifficulty,
		To:               to,
		Reason:           reason,
		PerformanceScore: rate,
	}
	s.Adjustments = append(s.Adjustments, adj)
	s.CurrentDifficulty = to
	s.window = s.window[:0]
	return &adj, nil
}

// Complete ends the session and records the learner's subjective rating.
// Ending is terminal: a second call is rejected and changes nothing.
func (s *Session) Complete(rating SubjectiveRating, now time.Time) error {
	if !s.Active {
		return ErrSessionComplete
	}
	s.Active = false
	completedAt := now
	s.CompletedAt = &completedAt
	s.Rating = rating
	return nil
}

// WindowPassRate returns the pass rate over the current rolling window,
// or 0 when the window is empty.
func (s *Session) WindowPassRate() float64 {
	if len(s.window) == 0 {
		return 0
	}
	passed := 0
	for _, ok := range s.window {
		if ok {
			passed++
		}
	}
	return float64(passed) / float64(len(s.window))
}

// WindowFill returns how many results the rolling window currently holds.
func (s *Session) WindowFill() int {
	return len(s.window)
}

// Accuracy returns the whole-session accuracy, or 0 before any attempt.
func (s *Session) Accuracy() float64 {
	if s.TotalAttempted == 0 {
		return 0
	}
	return float64(s.TotalCorrect) / float64(s.TotalAttempted)
}
