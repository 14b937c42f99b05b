package srs

import "fmt"

// Grade is an ordinal quality rating for a single review, from 0
// ("complete blackout") to 5 ("perfect recall").
//
// Two calling conventions exist at the API boundary: vocabulary and grammar
// reviews submit the full 0-5 scale, while imported-deck reviews submit the
// restricted Again/Good/Easy subset {1, 4, 5}. Both collapse to the same
// Outcome before reaching the scheduler, so equivalent intents produce
// identical state-machine behavior.
type Grade int

const (
	GradeBlackout          Grade = 0 // No recall at all.
	GradeIncorrect         Grade = 1 // Wrong, but remembered once shown.
	GradeIncorrectFamiliar Grade = 2 // Wrong, but the answer felt familiar.
	GradeCorrectHard       Grade = 3 // Correct with significant effort.
	GradeCorrect           Grade = 4 // Correct after some hesitation.
	GradePerfect           Grade = 5 // Effortless recall.
)

// IsValid reports whether g is within the accepted 0-5 scale.
func (g Grade) IsValid() bool {
	return g >= GradeBlackout && g <= GradePerfect
}

// IsValidRestricted reports whether g belongs to the three-button
// Again/Good/Easy convention used by imported-deck reviews.
func (g Grade) IsValidRestricted() bool {
	return g == GradeIncorrect || g == GradeCorrect || g == GradePerfect
}

// Outcome is the normalized result class of a review. The scheduler has
// exactly one code path per outcome regardless of which grade scale the
// caller used.
type Outcome int

const (
	OutcomeFail Outcome = iota // grade <= 2
	OutcomePass                // grade 3 or 4
	OutcomeEasy                // grade 5
)

var outcomeNames = [...]string{OutcomeFail: "fail", OutcomePass: "pass", OutcomeEasy: "easy"}

// String returns "fail", "pass" or "easy". Invalid values render as
// "Outcome(n)".
func (o Outcome) String() string {
	if o >= OutcomeFail && o <= OutcomeEasy {
		return outcomeNames[o]
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Outcome normalizes the grade into its outcome class. The grade must be
// valid; callers are expected to have checked IsValid first.
func (g Grade) Outcome() Outcome {
	switch {
	case g <= GradeIncorrectFamiliar:
		return OutcomeFail
	case g <= GradeCorrect:
		return OutcomePass
	default:
		return OutcomeEasy
	}
}
