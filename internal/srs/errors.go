package srs

import "errors"

// Sentinel errors for the srs package.
// Check with errors.Is: errors.Is(err, srs.ErrInvalidGrade)
var (
	// ErrInvalidGrade indicates a grade outside the accepted discrete set.
	// The scheduler never substitutes a default outcome for a bad grade.
	ErrInvalidGrade = errors.New("srs: invalid grade")

	// ErrInvalidState indicates a review state with an unknown lifecycle phase.
	ErrInvalidState = errors.New("srs: invalid review state")

	// ErrInvariant indicates an input state that violates a scheduling
	// invariant (e.g. ease factor below the floor). This is a programmer
	// error on the caller's side, not a recoverable condition.
	ErrInvariant = errors.New("srs: review state invariant violated")
)
