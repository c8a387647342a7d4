package analyzer

import "log/slog"

// Option configures a scorer.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger for scoring diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func newOptions(opts []Option) options {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
