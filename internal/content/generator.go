package content

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mkravets/glossa/internal/llm"
)

// Config holds generation parameters.
type Config struct {
	// MaxTokens bounds the response size. zero → 512.
	MaxTokens int

	// Temperature controls variety. Exercises benefit from some randomness;
	// zero → 0.7.
	Temperature float64
}

func (c Config) normalized() Config {
	if c.MaxTokens == 0 {
		c.MaxTokens = 512
	}
	if c.Temperature == 0 {
		c.Temperature = 0.7
	}
	return c
}

// Generator produces exercises through an LLM provider.
type Generator struct {
	provider llm.Provider
	cfg      Config
}

// New creates a Generator with the given provider and config.
func New(provider llm.Provider, cfg Config) *Generator {
	return &Generator{provider: provider, cfg: cfg.normalized()}
}

// Generate produces one exercise for the given input. The LLM output is
// schema-constrained by the provider and structurally checked here before
// use; a malformed exercise is surfaced as an error, never served.
func (g *Generator) Generate(ctx context.Context, in Input) (*Exercise, error) {
	if in.Word == "" {
		return nil, fmt.Errorf("content: target word is required")
	}
	if !in.Kind.IsValid() {
		return nil, fmt.Errorf("content: unknown exercise kind %q", in.Kind)
	}

	ctx = llm.WithPurpose(ctx, "exercise-gen")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(in)},
		},
		Schema:      ExerciseSchema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var ex Exercise
	if err := json.Unmarshal(resp.Content, &ex); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	if err := checkExercise(&ex, in); err != nil {
		return nil, err
	}
	return &ex, nil
}

// checkExercise enforces structural rules the JSON schema cannot express.
func checkExercise(ex *Exercise, in Input) error {
	if strings.TrimSpace(ex.Prompt) == "" {
		return fmt.Errorf("content: generated exercise has an empty prompt")
	}
	if strings.TrimSpace(ex.Answer) == "" {
		return fmt.Errorf("content: generated exercise has an empty answer")
	}
	if in.Kind == KindCloze {
		if !strings.Contains(ex.Prompt, "___") {
			return fmt.Errorf("content: cloze prompt has no blank")
		}
		if strings.Contains(strings.ToLower(ex.Prompt), strings.ToLower(ex.Answer)) {
			return fmt.Errorf("content: cloze prompt leaks the answer")
		}
	}
	return nil
}

// CheckAnswer compares the learner's input against the expected answer.
// Comparison trims whitespace, ignores case, collapses internal runs of
// spaces, and ignores trailing sentence punctuation.
func CheckAnswer(learnerAnswer string, ex *Exercise) bool {
	got := normalizeAnswer(learnerAnswer)
	if got == "" {
		return false
	}
	return got == normalizeAnswer(ex.Answer)
}

func normalizeAnswer(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.TrimRight(s, ".!?")
	return strings.Join(strings.Fields(s), " ")
}
