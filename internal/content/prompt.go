package content

import (
	"fmt"
	"strings"

	"github.com/mkravets/glossa/internal/practice"
)

const systemPrompt = `You are a language tutor generating one practice exercise at a time.
Write natural, everyday sentences. Use only vocabulary a learner at the
requested difficulty would plausibly know, apart from the target word itself.
Respond with JSON matching the provided schema and nothing else.`

// difficultyGuidance tunes sentence complexity per level.
var difficultyGuidance = map[practice.Difficulty]string{
	practice.DifficultyEasy:   "Use a short sentence (at most 8 words) in present tense. Include a hint.",
	practice.DifficultyMedium: "Use a sentence of 8-14 words. Past or future tense is fine. Include a short hint.",
	practice.DifficultyHard:   "Use a longer sentence with a subordinate clause or idiomatic phrasing. Leave the hint empty.",
}

// buildUserMessage renders the generation request for one exercise.
func buildUserMessage(in Input) string {
	var b strings.Builder

	switch in.Kind {
	case KindTranslation:
		fmt.Fprintf(&b, "Write a %s sentence using the word %q (%s) for the learner to translate into their own language.\n",
			in.Language, in.Word, in.Translation)
		b.WriteString("The prompt is the sentence to translate; the answer is its translation.\n")
	default:
		fmt.Fprintf(&b, "Write a cloze exercise in %s for the word %q (%s).\n",
			in.Language, in.Word, in.Translation)
		b.WriteString("The prompt is a sentence with the target word replaced by ___; the answer is the missing word, correctly conjugated or declined for the sentence.\n")
	}

	fmt.Fprintf(&b, "Difficulty: %s. %s\n", in.Difficulty, difficultyGuidance[in.Difficulty])
	return b.String()
}
