package content

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mkravets/glossa/internal/llm"
	"github.com/mkravets/glossa/internal/practice"
)

func clozeInput() Input {
	return Input{
		Word:        "hablar",
		Translation: "to speak",
		Language:    "Spanish",
		Kind:        KindCloze,
		Difficulty:  practice.DifficultyMedium,
	}
}

func TestGenerate_ClozeHappyPath(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{
			"kind": "cloze",
			"prompt": "Ayer yo ___ con mi abuela por teléfono.",
			"answer": "hablé",
			"hint": "preterite, first person",
			"explanation": "Hablar in the preterite yo form is hablé."
		}`),
	})
	g := New(mock, Config{})

	ex, err := g.Generate(context.Background(), clozeInput())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if ex.Kind != KindCloze {
		t.Errorf("Kind = %q, want cloze", ex.Kind)
	}
	if !strings.Contains(ex.Prompt, "___") {
		t.Errorf("Prompt = %q, want a blank", ex.Prompt)
	}
	if ex.Answer != "hablé" {
		t.Errorf("Answer = %q", ex.Answer)
	}

	if mock.CallCount() != 1 {
		t.Fatalf("calls = %d, want 1", mock.CallCount())
	}
	req := mock.Calls[0]
	if req.Schema != ExerciseSchema {
		t.Error("request did not carry the exercise schema")
	}
	msg := req.Messages[0].Content
	if !strings.Contains(msg, "hablar") || !strings.Contains(msg, "medium") {
		t.Errorf("user message missing word or difficulty: %q", msg)
	}
}

func TestGenerate_DifficultyShapesPrompt(t *testing.T) {
	for _, d := range []practice.Difficulty{practice.DifficultyEasy, practice.DifficultyMedium, practice.DifficultyHard} {
		in := clozeInput()
		in.Difficulty = d
		msg := buildUserMessage(in)
		if !strings.Contains(msg, string(d)) {
			t.Errorf("difficulty %s not mentioned in prompt", d)
		}
		if !strings.Contains(msg, difficultyGuidance[d]) {
			t.Errorf("guidance for %s missing from prompt", d)
		}
	}
}

func TestGenerate_RejectsMissingBlank(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{
			"kind": "cloze",
			"prompt": "Ayer yo hablé con mi abuela.",
			"answer": "hablé",
			"hint": "",
			"explanation": ""
		}`),
	})
	g := New(mock, Config{})

	_, err := g.Generate(context.Background(), clozeInput())
	if err == nil {
		t.Fatal("expected error for cloze without a blank")
	}
}

func TestGenerate_RejectsLeakedAnswer(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{
			"kind": "cloze",
			"prompt": "Yo ___ (hablé) con mi abuela.",
			"answer": "hablé",
			"hint": "",
			"explanation": ""
		}`),
	})
	g := New(mock, Config{})

	_, err := g.Generate(context.Background(), clozeInput())
	if err == nil {
		t.Fatal("expected error for prompt containing the answer")
	}
}

func TestGenerate_InvalidInput(t *testing.T) {
	g := New(llm.NewMockProvider(), Config{})
	ctx := context.Background()

	if _, err := g.Generate(ctx, Input{Kind: KindCloze}); err == nil {
		t.Error("expected error for missing word")
	}
	if _, err := g.Generate(ctx, Input{Word: "hablar", Kind: "essay"}); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestGenerate_ProviderErrorPropagates(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	g := New(mock, Config{})

	_, err := g.Generate(context.Background(), clozeInput())
	if err == nil {
		t.Fatal("expected provider error")
	}
}

func TestCheckAnswer(t *testing.T) {
	ex := &Exercise{Answer: "hablé"}
	tests := []struct {
		input string
		want  bool
	}{
		{"hablé", true},
		{"  hablé  ", true},
		{"HABLÉ", true},
		{"hable", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := CheckAnswer(tt.input, ex); got != tt.want {
			t.Errorf("CheckAnswer(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}

	sentence := &Exercise{Answer: "I spoke with my grandmother."}
	if !CheckAnswer("i spoke  with my grandmother", sentence) {
		t.Error("expected whitespace and punctuation tolerant match")
	}
}
