package srs

import (
	"fmt"
	"time"
)

// Config holds the tuning constants of the scheduler. Zero values produce
// Anki-style defaults; see field comments. The ease floor (MinEase) is a
// package invariant, not a tunable.
type Config struct {
	// LearningSteps are the short rehearsal intervals an item walks through
	// before it is trusted with long-interval review. nil → [1m, 10m].
	LearningSteps []time.Duration

	// RelearningSteps are the remedial intervals after a lapse. nil → [10m].
	RelearningSteps []time.Duration

	// GraduatingIntervalDays is the first Review interval after graduating
	// the learning steps with a Pass. zero → 1.
	GraduatingIntervalDays float64

	// EasyIntervalDays is the first Review interval after graduating with
	// an Easy. zero → 4.
	EasyIntervalDays float64

	// RegraduationIntervalDays is the reduced interval assigned when a
	// lapsed item graduates out of Relearning. zero → 1.
	RegraduationIntervalDays float64

	// EaseBonus multiplies the interval growth on an Easy review, on top of
	// the ease factor. zero → 1.3.
	EaseBonus float64

	// EasyEaseReward is added to the ease factor on an Easy review.
	// zero → 0.15.
	EasyEaseReward float64

	// LapseEasePenalty is subtracted from the ease factor on a lapse,
	// floored at MinEase. zero → 0.2.
	LapseEasePenalty float64

	// MaxIntervalDays caps the Review interval to bound review latency.
	// zero → 365.
	MaxIntervalDays float64
}

// DefaultConfig returns the default tuning constants.
func DefaultConfig() Config {
	return Config{
		LearningSteps:            []time.Duration{time.Minute, 10 * time.Minute},
		RelearningSteps:          []time.Duration{10 * time.Minute},
		GraduatingIntervalDays:   1,
		EasyIntervalDays:         4,
		RegraduationIntervalDays: 1,
		EaseBonus:                1.3,
		EasyEaseReward:           0.15,
		LapseEasePenalty:         0.2,
		MaxIntervalDays:          365,
	}
}

// normalized fills zero-value fields with defaults.
func (c Config) normalized() Config {
	def := DefaultConfig()
	if len(c.LearningSteps) == 0 {
		c.LearningSteps = def.LearningSteps
	}
	if len(c.RelearningSteps) == 0 {
		c.RelearningSteps = def.RelearningSteps
	}
	if c.GraduatingIntervalDays == 0 {
		c.GraduatingIntervalDays = def.GraduatingIntervalDays
	}
	if c.EasyIntervalDays == 0 {
		c.EasyIntervalDays = def.EasyIntervalDays
	}
	if c.RegraduationIntervalDays == 0 {
		c.RegraduationIntervalDays = def.RegraduationIntervalDays
	}
	if c.EaseBonus == 0 {
		c.EaseBonus = def.EaseBonus
	}
	if c.EasyEaseReward == 0 {
		c.EasyEaseReward = def.EasyEaseReward
	}
	if c.LapseEasePenalty == 0 {
		c.LapseEasePenalty = def.LapseEasePenalty
	}
	if c.MaxIntervalDays == 0 {
		c.MaxIntervalDays = def.MaxIntervalDays
	}
	return c
}

// validate rejects configurations that could stall or invert the schedule.
func (c Config) validate() error {
	for _, s := range c.LearningSteps {
		if s <= 0 {
			return fmt.Errorf("srs: learning step %s must be positive", s)
		}
	}
	for _, s := range c.RelearningSteps {
		if s <= 0 {
			return fmt.Errorf("srs: relearning step %s must be positive", s)
		}
	}
	if c.GraduatingIntervalDays < 0 || c.EasyIntervalDays < 0 || c.RegraduationIntervalDays < 0 {
		return fmt.Errorf("srs: graduation intervals must be non-negative")
	}
	if c.EaseBonus < 1 {
		return fmt.Errorf("srs: ease bonus %.3f must be >= 1", c.EaseBonus)
	}
	if c.EasyEaseReward < 0 || c.LapseEasePenalty < 0 {
		return fmt.Errorf("srs: ease adjustments must be non-negative")
	}
	if c.MaxIntervalDays < 1 {
		return fmt.Errorf("srs: max interval %.1f must be at least 1 day", c.MaxIntervalDays)
	}
	return nil
}
