package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/bsdetector/internal/model"
	"golang.org/x/sync/errgroup"
)

// defaultConcurrency is the number of analyses run at once when not set.
const defaultConcurrency = 4

// Analyzer analyses one URL. *Orchestrator satisfies it.
type Analyzer interface {
	Analyze(ctx context.Context, rawURL, lang string) *model.AnalysisResult
}

// BatchProcessor analyses several URLs concurrently.
//
// Design decision: We use errgroup.SetLimit rather than a worker pool
// because errgroup handles the limit and the cancellation for us. Each URL
// gets its own goroutine, but only 'concurrency' of them run at a time.
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
	logger      *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent analyses.
// Non-positive values keep the default.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a BatchProcessor around an analyzer.
func NewBatchProcessor(a Analyzer, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		analyzer:    a,
		concurrency: defaultConcurrency,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// AnalyzeAll analyses every URL and returns the results in input order.
//
// callback, if not nil, is called as each analysis completes with the
// result and its index in urls. It is called from the analysing goroutine
// and must be safe for concurrent use.
//
// Analyses never fail individually. The error is the context's error when
// the batch was cancelled; URLs not started by then have a nil result.
func (bp *BatchProcessor) AnalyzeAll(
	ctx context.Context,
	urls []string,
	lang string,
	callback func(result *model.AnalysisResult, index int),
) ([]*model.AnalysisResult, error) {
	bp.logger.Info("starting batch analysis",
		"total_urls", len(urls),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()

	// Each goroutine writes only its own index.
	results := make([]*model.AnalysisResult, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, target := range urls {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			result := bp.analyzer.Analyze(gctx, target, lang)
			results[i] = result

			if callback != nil {
				callback(result, i)
			}
			return nil
		})
	}

	err := g.Wait()

	bp.logger.Info("batch analysis complete",
		"total_urls", len(urls),
		"elapsed", time.Since(startTime),
	)

	return results, err
}
