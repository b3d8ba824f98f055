package traverse

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with traversal-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// LogTraversal logs a completed traversal pass.
func (l *Logger) LogTraversal(ctx context.Context, kind string, nodes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "traversal failed",
			"kind", kind,
			"nodes", nodes,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "traversal completed",
			"kind", kind,
			"nodes", nodes,
		)
	}
}

// LogFullClear logs a saturated generation that forced a full array rewrite.
func (l *Logger) LogFullClear(ctx context.Context, capacity int) {
	l.DebugContext(ctx, "visited generation saturated, array rewritten",
		"capacity", capacity,
	)
}
