package logging

import "context"

// contextKey is the type for context keys used by this package.
type contextKey int

const (
	loggerKey contextKey = iota
	phaseStackKey
)

// FromContext retrieves a Logger from context, or the default logger if ctx
// carries none. Grounded on the teacher's internal/logging/context.go.
func FromContext(ctx context.Context) *Logger {
	if ctx == nil {
		return Default()
	}
	if logger, ok := ctx.Value(loggerKey).(*Logger); ok && logger != nil {
		return logger
	}
	return Default()
}

// WithLogger returns a context with logger attached.
func WithLogger(ctx context.Context, logger *Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// phaseStack returns the list of phase names currently open on ctx,
// outermost first.
func phaseStack(ctx context.Context) []string {
	if ctx == nil {
		return nil
	}
	if stack, ok := ctx.Value(phaseStackKey).([]string); ok {
		return stack
	}
	return nil
}

func withPhaseStack(ctx context.Context, stack []string) context.Context {
	return context.WithValue(ctx, phaseStackKey, stack)
}
