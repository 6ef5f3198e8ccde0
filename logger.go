package nnscan

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with nnscan-specific context.
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

// NewJSONLogger creates a Logger that outputs JSON-formatted logs to w.
// If w is nil, logs go to stderr.
func NewJSONLogger(w io.Writer, level slog.Level) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return NewLogger(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs to w.
// If w is nil, logs go to stderr.
func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return NewLogger(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))
}

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// WithLanes adds a lanes field to the logger.
func (l *Logger) WithLanes(lanes int) *Logger {
	return &Logger{
		Logger: l.Logger.With("lanes", lanes),
	}
}

// LogLaunch logs the outcome of a launch over n vectors.
func (l *Logger) LogLaunch(ctx context.Context, n, lanes, unmatched int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "launch failed",
			"count", n,
			"lanes", lanes,
			"duration", duration,
			"error", err,
		)
		return
	}

	if unmatched > 0 {
		l.WarnContext(ctx, "launch completed with unmatched vectors",
			"count", n,
			"lanes", lanes,
			"unmatched", unmatched,
			"duration", duration,
		)
		return
	}

	l.DebugContext(ctx, "launch completed",
		"count", n,
		"lanes", lanes,
		"duration", duration,
	)
}
