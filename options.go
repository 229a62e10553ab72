package spectrago

import "log/slog"

type options struct {
	logger      *Logger
	parallelism int
}

// Option configures Session behavior.
type Option func(*options)

// WithLogger configures structured logging for session operations.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithParallelism bounds the worker pool the loader may use for per-record
// parsing. Results are always collected back into input order, so the
// setting never affects the produced dataset.
func WithParallelism(n int) Option {
	return func(o *options) {
		o.parallelism = n
	}
}
