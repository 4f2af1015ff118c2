package palign

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with palign-specific context. It provides
// structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler. If handler is nil,
// a default text handler to stderr is used.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // unreachable level
	})
	return &Logger{Logger: slog.New(handler)}
}

// WithKernel adds the resolved kernel name to the logger.
func (l *Logger) WithKernel(name string) *Logger {
	return &Logger{Logger: l.Logger.With("kernel", name)}
}

// WithMode adds the alignment mode to the logger.
func (l *Logger) WithMode(mode string) *Logger {
	return &Logger{Logger: l.Logger.With("mode", mode)}
}

// LogAlign logs one alignment call.
func (l *Logger) LogAlign(ctx context.Context, queryLen, refLen int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "alignment failed",
			"query_len", queryLen,
			"ref_len", refLen,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "alignment completed",
		"query_len", queryLen,
		"ref_len", refLen,
		"duration", duration,
	)
}

// LogProfileBuild logs a profile construction.
func (l *Logger) LogProfileBuild(ctx context.Context, queryLen int, stats bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "profile build failed",
			"query_len", queryLen,
			"stats", stats,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "profile built",
		"query_len", queryLen,
		"stats", stats,
	)
}
