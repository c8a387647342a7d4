package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/nao1215/bsdetector/internal/analyzer"
	"github.com/nao1215/bsdetector/internal/extractor"
	"github.com/nao1215/bsdetector/internal/fetcher"
	"github.com/nao1215/bsdetector/internal/model"
)

// Job is one analysis as it passes through the strategies.
type Job struct {
	// URL is the article URL exactly as given.
	URL string

	// Lang is the language code for user-facing notes.
	Lang string

	// Result is set by the strategy that produced the analysis.
	Result *model.AnalysisResult
}

// Strategy is one way of analysing an article.
//
// Attempt returns true after setting job.Result. It returns false without
// an error when it cannot produce a result and the next strategy should be
// tried. An error ends the run and triggers the recovery path.
type Strategy interface {
	// Name returns the strategy's name for logging purposes.
	Name() string

	// Attempt tries to analyse the job's URL.
	Attempt(ctx context.Context, job *Job) (bool, error)
}

// Fetcher retrieves the HTML of an article. *fetcher.Fetcher satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) string
}

// retrieve fetches and parses the article. It returns a nil page when the
// HTML is missing or too short to be an article.
func retrieve(ctx context.Context, f Fetcher, rawURL string, logger *slog.Logger) (*extractor.Page, string, error) {
	html := f.Fetch(ctx, rawURL)
	if utf8.RuneCountInString(html) < fetcher.MinContentLength {
		logger.Debug("no usable content retrieved", "url", rawURL, "length", len(html))
		return nil, "", nil
	}

	page, err := extractor.Parse(html)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrParseHTML, err)
	}
	return page, html, nil
}

// pageTitle returns the page title, or one derived from the URL when the
// page has none.
func pageTitle(page *extractor.Page, rawURL string) string {
	if title := page.Title(); title != "" {
		return title
	}
	return TitleFromURL(rawURL)
}

// ContentStrategy fetches the article and scores its structure and text.
type ContentStrategy struct {
	fetcher  Fetcher
	analyzer *analyzer.ContentAnalyzer
	logger   *slog.Logger
}

// NewContentStrategy creates the structured content strategy.
func NewContentStrategy(f Fetcher, a *analyzer.ContentAnalyzer, logger *slog.Logger) *ContentStrategy {
	if logger == nil {
		logger = slog.Default()
	}
	return &ContentStrategy{fetcher: f, analyzer: a, logger: logger}
}

// Name returns the strategy name.
func (s *ContentStrategy) Name() string {
	return "content"
}

// Attempt fetches, extracts and scores the article.
func (s *ContentStrategy) Attempt(ctx context.Context, job *Job) (bool, error) {
	page, html, err := retrieve(ctx, s.fetcher, job.URL, s.logger)
	if err != nil || page == nil {
		return false, err
	}

	title := pageTitle(page, job.URL)

	// Structured strips noise from the page, and the authorship checks
	// that follow see the stripped page.
	content := page.Structured()
	s.logger.Debug("extracted structured content",
		"url", job.URL,
		"main_text_length", utf8.RuneCountInString(content.MainText),
		"headings", len(content.Headings.All()),
		"paragraphs", len(content.Paragraphs),
		"links", len(content.Links),
	)

	score, err := s.analyzer.ScoreStructured(ctx, title, &content, job.URL, page)
	if err != nil {
		return false, err
	}

	job.Result = model.NewAnalysisResult(job.URL, title, score, model.MethodStructured)
	job.Result.ContentDigest = model.ContentDigest(html)
	return true, nil
}

// PlainContentStrategy fetches the article and scores only its main text.
// It skips the structural checks, which suits pages whose markup says
// little about the article.
type PlainContentStrategy struct {
	fetcher  Fetcher
	analyzer *analyzer.ContentAnalyzer
	logger   *slog.Logger
}

// NewPlainContentStrategy creates the plain-text content strategy.
func NewPlainContentStrategy(f Fetcher, a *analyzer.ContentAnalyzer, logger *slog.Logger) *PlainContentStrategy {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlainContentStrategy{fetcher: f, analyzer: a, logger: logger}
}

// Name returns the strategy name.
func (s *PlainContentStrategy) Name() string {
	return "plain-content"
}

// Attempt fetches the article and scores its main text.
func (s *PlainContentStrategy) Attempt(ctx context.Context, job *Job) (bool, error) {
	page, html, err := retrieve(ctx, s.fetcher, job.URL, s.logger)
	if err != nil || page == nil {
		return false, err
	}

	title := pageTitle(page, job.URL)
	text := page.MainText()

	score := s.analyzer.ScoreText(ctx, title, text, job.URL, page)

	job.Result = model.NewAnalysisResult(job.URL, title, score, model.MethodText)
	job.Result.ContentDigest = model.ContentDigest(html)
	return true, nil
}

// URLOnlyStrategy scores the URL string alone. It never declines.
type URLOnlyStrategy struct {
	analyzer *analyzer.URLAnalyzer
}

// NewURLOnlyStrategy creates the URL-only strategy.
func NewURLOnlyStrategy(a *analyzer.URLAnalyzer) *URLOnlyStrategy {
	return &URLOnlyStrategy{analyzer: a}
}

// Name returns the strategy name.
func (s *URLOnlyStrategy) Name() string {
	return "url-only"
}

// Attempt scores the URL.
func (s *URLOnlyStrategy) Attempt(ctx context.Context, job *Job) (bool, error) {
	score := s.analyzer.Analyze(ctx, job.URL)
	job.Result = model.NewAnalysisResult(job.URL, TitleFromURL(job.URL), score, model.MethodURLOnly)
	return true, nil
}
