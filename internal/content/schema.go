package content

import "github.com/mkravets/glossa/internal/llm"

// ExerciseSchema defines the JSON schema for LLM exercise generation
// responses.
var ExerciseSchema = &llm.Schema{
	Name:        "language-exercise",
	Description: "A single language practice exercise with answer and explanation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"kind": map[string]any{
				"type":        "string",
				"enum":        []any{"cloze", "translation"},
				"description": "The exercise shape that was generated",
			},
			"prompt": map[string]any{
				"type":        "string",
				"description": "The exercise shown to the learner. Cloze prompts mark the blank with ___ (three underscores).",
			},
			"answer": map[string]any{
				"type":        "string",
				"description": "The expected answer. For cloze: the word filling the blank. For translation: the translated sentence.",
			},
			"hint": map[string]any{
				"type":        "string",
				"description": "A short scaffolding hint. May be empty for hard difficulty.",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "A short explanation of why the answer is correct, mentioning the relevant grammar when useful",
			},
		},
		"required":             []any{"kind", "prompt", "answer", "hint", "explanation"},
		"additionalProperties": false,
	},
}
