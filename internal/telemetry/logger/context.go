// Package logger provides structured logging for fontsession.
package logger

import "context"

// contextKey is a type for context keys to avoid collisions.
type contextKey string

const (
	loggerKey    contextKey = "fontsession.logger"
	operationKey contextKey = "fontsession.operation"
	sessionKey   contextKey = "fontsession.session"
)

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext extracts the logger from context.
// Returns the default logger if none is set.
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(loggerKey).(Logger); ok {
		return l
	}
	return Default()
}

// WithOperation names the operation (save, restore, watch) running under ctx.
func WithOperation(ctx context.Context, op string) context.Context {
	return context.WithValue(ctx, operationKey, op)
}

// OperationFromContext extracts the operation name from context.
func OperationFromContext(ctx context.Context) string {
	if op, ok := ctx.Value(operationKey).(string); ok {
		return op
	}
	return ""
}

// WithSession names the stored session the work under ctx concerns.
func WithSession(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, sessionKey, name)
}

// SessionFromContext extracts the session name from context.
func SessionFromContext(ctx context.Context) string {
	if name, ok := ctx.Value(sessionKey).(string); ok {
		return name
	}
	return ""
}

// L returns the context's logger bound to ctx, so entries carry the
// operation and session name stored on it.
func L(ctx context.Context) Logger {
	return FromContext(ctx).WithContext(ctx)
}
