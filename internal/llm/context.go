package llm

import "context"

type ctxKey int

const purposeKey ctxKey = iota

// WithPurpose labels the context with what the call is for, e.g.
// "exercise-gen". The logging decorator records the label with each event.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom returns the context's purpose label, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return "unknown"
}
