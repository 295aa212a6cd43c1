package services

import "context"

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	targetKey    contextKey = "target"
)

// WithRequestID stamps the journal request identifier onto the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the request identifier, when present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok && id != ""
}

// WithTarget stamps the human-readable search target onto the context.
func WithTarget(ctx context.Context, target string) context.Context {
	return context.WithValue(ctx, targetKey, target)
}

// TargetFromContext extracts the search target, when present.
func TargetFromContext(ctx context.Context) (string, bool) {
	target, ok := ctx.Value(targetKey).(string)
	return target, ok && target != ""
}
