// Package content generates practice exercises with an LLM. Exercises feed
// the adaptive practice session; they never touch the review scheduler
// directly.
package content

import "github.com/mkravets/glossa/internal/practice"

// ExerciseKind selects the exercise shape.
type ExerciseKind string

const (
	// KindCloze is a fill-in-the-blank sentence using the target word.
	KindCloze ExerciseKind = "cloze"
	// KindTranslation asks the learner to translate a sentence.
	KindTranslation ExerciseKind = "translation"
)

// IsValid reports whether k is a known exercise kind.
func (k ExerciseKind) IsValid() bool {
	return k == KindCloze || k == KindTranslation
}

// Input describes the exercise to generate.
type Input struct {
	// Word is the target vocabulary word or phrase.
	Word string

	// Translation is the word's meaning in the learner's language.
	Translation string

	// Language is the language being learned, e.g. "Spanish".
	Language string

	// Kind selects cloze or translation.
	Kind ExerciseKind

	// Difficulty targets the session's current level.
	Difficulty practice.Difficulty
}

// Exercise is one generated practice exercise.
type Exercise struct {
	Kind        ExerciseKind `json:"kind"`
	Prompt      string       `json:"prompt"`
	Answer      string       `json:"answer"`
	Hint        string       `json:"hint"`
	Explanation string       `json:"explanation"`
}
