package geoweights

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with geoweights-specific context.
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
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithK adds a k (neighbor count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithThreshold adds a threshold field to the logger.
func (l *Logger) WithThreshold(th float64) *Logger {
	return &Logger{
		Logger: l.Logger.With("threshold", th),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogBuild logs a weights build.
func (l *Logger) LogBuild(ctx context.Context, method string, observations, edges int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "weights build failed",
			"method", method,
			"observations", observations,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "weights build completed",
			"method", method,
			"observations", observations,
			"edges", edges,
		)
	}
}

// LogEstimate logs an estimator run.
func (l *Logger) LogEstimate(ctx context.Context, name string, value float64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "estimate failed",
			"estimator", name,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "estimate completed",
			"estimator", name,
			"value", value,
		)
	}
}

// LogSave logs a GWT save.
func (l *Logger) LogSave(ctx context.Context, name string, edges int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "gwt save failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "gwt saved",
			"name", name,
			"edges", edges,
		)
	}
}
