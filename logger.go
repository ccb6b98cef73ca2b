package newsclust

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with newsclust-specific context.
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
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
			Level: slog.Level(1000), // Unreachable level
		})),
	}
}

// WithK adds a k (cluster count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithSource adds a source (blob name) field to the logger.
func (l *Logger) WithSource(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("source", name),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogRun logs a clustering run.
func (l *Logger) LogRun(ctx context.Context, n, k, iterations int, state State, duration time.Duration, err error) {
	switch {
	case err != nil:
		l.ErrorContext(ctx, "clustering failed",
			"observations", n,
			"k", k,
			"error", err,
		)
	case state == StateIterationLimitReached:
		l.WarnContext(ctx, "clustering stopped at iteration limit",
			"observations", n,
			"k", k,
			"iterations", iterations,
			"duration", duration,
		)
	default:
		l.DebugContext(ctx, "clustering converged",
			"observations", n,
			"k", k,
			"iterations", iterations,
			"duration", duration,
		)
	}
}

// LogIteration logs one Lloyd iteration.
func (l *Logger) LogIteration(ctx context.Context, iteration, changed int) {
	l.DebugContext(ctx, "iteration completed",
		"iteration", iteration,
		"changed", changed,
	)
}

// LogLoad logs the loading of one source.
func (l *Logger) LogLoad(ctx context.Context, source string, records, skipped int, err error) {
	switch {
	case err != nil:
		l.ErrorContext(ctx, "source load failed",
			"source", source,
			"error", err,
		)
	case skipped > 0:
		l.WarnContext(ctx, "source loaded with skipped rows",
			"source", source,
			"records", records,
			"skipped", skipped,
		)
	default:
		l.DebugContext(ctx, "source loaded",
			"source", source,
			"records", records,
		)
	}
}

// LogPublish logs a report publication.
func (l *Logger) LogPublish(ctx context.Context, name string, size int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "report publish failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "report published",
			"name", name,
			"bytes", size,
		)
	}
}
