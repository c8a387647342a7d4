package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nao1215/bsdetector/internal/analyzer"
	"github.com/nao1215/bsdetector/internal/model"
)

// fallbackConfidencePenalty and fallbackMinConfidence shape the confidence
// of a recovered analysis.
const (
	fallbackConfidencePenalty = 20
	fallbackMinConfidence     = 30
)

// Orchestrator runs strategies in order until one produces a result.
type Orchestrator struct {
	// strategies contains the ordered list of strategies to try.
	strategies []Strategy

	// fallback scores the URL on the recovery path.
	fallback *analyzer.URLAnalyzer

	// logger is used for structured logging during execution.
	logger *slog.Logger
}

// Option is a function that configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets a custom logger for the orchestrator.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithStrategies replaces the strategy list.
func WithStrategies(strategies ...Strategy) Option {
	return func(o *Orchestrator) {
		o.strategies = strategies
	}
}

// New creates an Orchestrator. The fallback analyzer is used on the recovery
// path. Strategies are added with AddStrategy or WithStrategies.
func New(fallback *analyzer.URLAnalyzer, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		strategies: make([]Strategy, 0),
		fallback:   fallback,
	}

	for _, opt := range opts {
		opt(o)
	}

	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.fallback == nil {
		o.fallback = analyzer.NewURLAnalyzer(nil, analyzer.WithLogger(o.logger))
	}

	return o
}

// AddStrategy appends a strategy. Strategies are tried in the order they
// are added.
func (o *Orchestrator) AddStrategy(s Strategy) {
	o.strategies = append(o.strategies, s)
}

// StrategyNames returns the names of all strategies in execution order.
func (o *Orchestrator) StrategyNames() []string {
	names := make([]string, len(o.strategies))
	for i, s := range o.strategies {
		names[i] = s.Name()
	}
	return names
}

// Analyze analyses one URL. It never fails: when a strategy returns an error
// or panics, or no strategy produces a result, the URL-only analysis is run
// with reduced confidence and a warning in the requested language.
func (o *Orchestrator) Analyze(ctx context.Context, rawURL, lang string) *model.AnalysisResult {
	job := &Job{URL: rawURL, Lang: lang}
	start := time.Now()

	o.logger.Info("analyzing", "url", rawURL, "lang", lang)

	if err := o.run(ctx, job); err != nil {
		o.logger.Warn("analysis failed, using URL-only fallback", "url", rawURL, "error", err)
		return o.fallbackResult(ctx, job)
	}

	o.logger.Info("analysis complete",
		"url", rawURL,
		"method", job.Result.Method,
		"verdict", job.Result.Verdict,
		"rating", job.Result.BullshitRating,
		"elapsed", time.Since(start),
	)
	return job.Result
}

// run tries the strategies in order.
func (o *Orchestrator) run(ctx context.Context, job *Job) error {
	for _, s := range o.strategies {
		o.logger.Debug("attempting strategy", "strategy", s.Name(), "url", job.URL)

		ok, err := attempt(ctx, s, job)
		if err != nil {
			return fmt.Errorf("%s: %w", s.Name(), err)
		}
		if ok && job.Result != nil {
			return nil
		}

		o.logger.Debug("strategy declined", "strategy", s.Name(), "url", job.URL)
	}
	return ErrNoResult
}

// attempt runs one strategy and turns a panic into an error.
func attempt(ctx context.Context, s Strategy, job *Job) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			err = fmt.Errorf("%w: %v", ErrStrategyPanic, r)
		}
	}()
	return s.Attempt(ctx, job)
}

// fallbackResult produces the recovered result.
func (o *Orchestrator) fallbackResult(ctx context.Context, job *Job) *model.AnalysisResult {
	score := o.fallback.Analyze(ctx, job.URL)
	score.Confidence = max(fallbackMinConfidence, score.Confidence-fallbackConfidencePenalty)
	score.Reasons = append(score.Reasons, model.Note(FallbackWarning(job.Lang)))

	return model.NewAnalysisResult(job.URL, TitleFromURL(job.URL), score, model.MethodFallback)
}
