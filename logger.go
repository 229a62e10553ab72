package spectrago

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with session-specific helpers.
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
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{Logger: slog.New(handler)}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{Logger: slog.New(handler)}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{Logger: slog.New(handler)}
}

// LogLoad logs a dataset load.
func (l *Logger) LogLoad(ctx context.Context, path string, records int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"path", path,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "load completed",
			"path", path,
			"records", records,
		)
	}
}

// LogFilter logs a filter recomputation.
func (l *Logger) LogFilter(ctx context.Context, column string, visible, total int) {
	l.DebugContext(ctx, "filter applied",
		"column", column,
		"visible", visible,
		"total", total,
	)
}

// LogColorMap logs a color map rebuild.
func (l *Logger) LogColorMap(ctx context.Context, column string, values int) {
	l.DebugContext(ctx, "color map rebuilt",
		"column", column,
		"values", values,
	)
}
