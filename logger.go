package activeset

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with activeset-specific context.
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
// If w is nil, logs go to stderr.
func NewJSONLogger(w io.Writer, level slog.Level) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return NewLogger(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
// If w is nil, logs go to stderr.
func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return NewLogger(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithBlob adds a blob name field to the logger.
func (l *Logger) WithBlob(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("blob", name),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogRead logs a partial read of a stored vector.
func (l *Logger) LogRead(ctx context.Context, sel *Selector, active, chunks int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "partial read failed",
			"selector", sel,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "partial read completed",
			"selector", sel,
			"active", active,
			"chunks", chunks,
		)
	}
}

// LogWrite logs a full or partial write of a stored vector.
func (l *Logger) LogWrite(ctx context.Context, sel *Selector, active, chunks int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "write failed",
			"selector", sel,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "write completed",
			"selector", sel,
			"active", active,
			"chunks", chunks,
		)
	}
}
