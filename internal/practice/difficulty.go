package practice

// Difficulty represents an adaptive practice difficulty level.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// IsValid reports whether d is a known difficulty level.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// StepUp returns the next harder level, capped at Hard.
func (d Difficulty) StepUp() Difficulty {
	switch d {
	case DifficultyEasy:
		return DifficultyMedium
	case DifficultyMedium:
		return DifficultyHard
	}
	return d
}

// StepDown returns the next easier level, capped at Easy.
func (d Difficulty) StepDown() Difficulty {
	switch d {
	case DifficultyHard:
		return DifficultyMedium
	case DifficultyMedium:
		return DifficultyEasy
	}
	return d
}

// SubjectiveRating is the learner's self-reported verdict on a completed
// session, collected at the end of a session.
type SubjectiveRating string

const (
	RatingTooEasy   SubjectiveRating = "too-easy"
	RatingJustRight SubjectiveRating = "just-right"
	RatingTooHard   SubjectiveRating = "too-hard"
)

// IsValid reports whether r is a known rating.
func (r SubjectiveRating) IsValid() bool {
	switch r {
	case RatingTooEasy, RatingJustRight, RatingTooHard:
		return true
	}
	return false
}

// StartingDifficulty determines the next session's starting level from the
// previous session's ending level and the learner's subjective rating:
// too-easy steps up, too-hard steps down, just-right holds. Unknown inputs
// fall back to Medium.
func StartingDifficulty(previous Difficulty, rating SubjectiveRating) Difficulty {
	if !previous.IsValid() {
		return DifficultyMedium
	}
	switch rating {
	case RatingTooEasy:
		return previous.StepUp()
	case RatingTooHard:
		return previous.StepDown()
	}
	return previous
}
