package llm

import "context"

type purposeCtxKey struct{}

// Purposes recorded on llm request events.
const (
	PurposeQuizGeneration = "quiz-generation"
	PurposeUnknown        = "unknown"
)

// WithPurpose labels the LLM calls made with ctx.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeCtxKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeCtxKey{}).(string); ok && v != "" {
		return v
	}
	return PurposeUnknown
}
