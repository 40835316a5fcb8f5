package llm

import "context"

type contextKey string

const (
	purposeKey contextKey = "llm_purpose"
	callIDKey  contextKey = "llm_call_id"
)

// WithPurpose attaches a purpose label (the task type) to the context for
// event logging.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom extracts the purpose label from the context.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return "unknown"
}

// WithCallID attaches a correlation id for one generation call.
func WithCallID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, callIDKey, id)
}

// CallIDFrom returns the correlation id, or "" when none was attached.
func CallIDFrom(ctx context.Context) string {
	v, _ := ctx.Value(callIDKey).(string)
	return v
}
