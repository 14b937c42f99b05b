// Package llm abstracts over hosted language-model APIs. Exercise
// generation talks to a Provider and never to a vendor SDK directly, so
// the backing model is swappable through configuration alone.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates structured completions. Implementations wrap one
// vendor SDK each; decorators add retry and request logging on top.
type Provider interface {
	// Generate runs one completion. When the request carries a Schema the
	// provider uses its native structured-output mechanism and the returned
	// Content is schema-valid JSON; otherwise Content is the raw text,
	// wrapped as a JSON string.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID reports the configured model identifier.
	ModelID() string
}

// Role labels a message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of conversation.
type Message struct {
	Role    Role
	Content string
}

// Schema names a JSON Schema the response must conform to. Name doubles
// as the tool name (Anthropic) or response-format name (OpenAI); keep it
// kebab-case, e.g. "language-exercise".
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Request is one completion call.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Messages is the conversation so far. Exercise generation sends a
	// single user message.
	Messages []Message

	// Schema, when set, constrains the output shape.
	Schema *Schema

	// MaxTokens bounds the response length.
	MaxTokens int

	// Temperature in [0, 1]. Zero means deterministic.
	Temperature float64
}

// Usage is the token accounting for one call.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Response is the model's output for one call.
type Response struct {
	// Content is schema-valid JSON when the request had a Schema, or the
	// raw text as a JSON string otherwise.
	Content json.RawMessage

	// Usage reports tokens consumed.
	Usage Usage

	// Model is the model that actually served the call.
	Model string

	// StopReason is normalized across vendors to "end", "max_tokens"
	// or "error".
	StopReason string
}
