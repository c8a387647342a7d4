package fetcher

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"golang.org/x/time/rate"
)

// MinContentLength is the number of characters a body must exceed to count
// as a usable page.
const MinContentLength = 100

// Fetcher walks its backends in order until one returns a usable page.
type Fetcher struct {
	backends []Backend
	limiter  *rate.Limiter
	logger   *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithDelay sets the minimum spacing between retrieval attempts.
// Zero disables the limit.
func WithDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		if d <= 0 {
			f.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		f.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

// WithLogger sets the logger for per-backend diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// New creates a Fetcher that tries backends in the given order.
func New(backends []Backend, opts ...Option) *Fetcher {
	f := &Fetcher{
		backends: backends,
		limiter:  rate.NewLimiter(rate.Inf, 1),
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Fetch returns the first body longer than MinContentLength characters.
// When no backend produces one, the last body obtained is returned, which
// is empty or too short; callers treat that as unreachable content.
// A cancelled context stops the sequence early.
func (f *Fetcher) Fetch(ctx context.Context, target string) string {
	html := ""

	for _, backend := range f.backends {
		if err := f.limiter.Wait(ctx); err != nil {
			f.logger.Debug("retrieval cancelled", "url", target, "error", err)
			return html
		}

		start := time.Now()
		body, err := backend.Retrieve(ctx, target)
		if err != nil {
			f.logger.Debug("retrieval backend failed",
				"backend", backend.Name(),
				"url", target,
				"duration", time.Since(start),
				"error", err,
			)
			if ctx.Err() != nil {
				return html
			}
			continue
		}

		html = body
		length := utf8.RuneCountInString(body)
		if length > MinContentLength {
			f.logger.Debug("retrieved article",
				"backend", backend.Name(),
				"url", target,
				"length", length,
				"duration", time.Since(start),
			)
			return html
		}

		f.logger.Debug("retrieval backend returned too little content",
			"backend", backend.Name(),
			"url", target,
			"length", length,
		)
	}

	return html
}
