package pipeline

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/nao1215/bsdetector/internal/analyzer"
	"github.com/nao1215/bsdetector/internal/model"
)

// stubFetcher returns a fixed body.
type stubFetcher struct {
	html  string
	calls atomic.Int32
}

func (f *stubFetcher) Fetch(_ context.Context, _ string) string {
	f.calls.Add(1)
	return f.html
}

// listedBlacklist lists every URL.
type listedBlacklist struct{}

func (listedBlacklist) IsBlacklisted(_ context.Context, _ string) bool { return true }
func (listedBlacklist) ReasonFor(_ string) string                      { return "Known satirical website" }

const articleHTML = `<!DOCTYPE html>
<html>
<head>
  <title>  Council approves new budget  </title>
  <meta name="description" content="The city council approved next year's budget after a long debate on Tuesday.">
</head>
<body>
  <nav>Home | News | Sports</nav>
  <article>
    <h1>Council approves new budget</h1>
    <p class="byline author">By Jane Roe</p>
    <time datetime="2024-03-05">March 5, 2024</time>
    <h2>What changes</h2>
    <p>The city council approved the budget for next year after a debate that lasted most of the evening.</p>
    <p>According to the finance committee report, spending on schools rises by four percent.</p>
    <p>Data shows that road repairs were delayed in three districts during the last two years.</p>
    <p>An expert says the plan is balanced, although reserves remain lower than recommended.</p>
    <p>Residents can read the full document on the <a href="https://www.reuters.com/budget">city website</a>.</p>
    <p>The next council meeting will discuss public transport and the new cycling lanes.</p>
  </article>
</body>
</html>`

func newAnalyzers(bl analyzer.Blacklist) (*analyzer.ContentAnalyzer, *analyzer.URLAnalyzer) {
	return analyzer.NewContentAnalyzer(bl), analyzer.NewURLAnalyzer(bl)
}

// TestContentStrategy tests the structured content strategy.
func TestContentStrategy(t *testing.T) {
	t.Parallel()

	const target = "https://news.example.com/local/council-budget"

	t.Run("scores retrieved article", func(t *testing.T) {
		t.Parallel()
		content, _ := newAnalyzers(nil)
		s := NewContentStrategy(&stubFetcher{html: articleHTML}, content, nil)

		job := &Job{URL: target, Lang: "en"}
		ok, err := s.Attempt(context.Background(), job)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok || job.Result == nil {
			t.Fatal("expected a result")
		}

		got := job.Result
		if got.Method != model.MethodStructured {
			t.Errorf("expected structured method, got %s", got.Method)
		}
		if got.Title != "Council approves new budget" {
			t.Errorf("expected trimmed page title, got %q", got.Title)
		}
		if got.ContentDigest != model.ContentDigest(articleHTML) {
			t.Errorf("expected digest of the retrieved HTML, got %q", got.ContentDigest)
		}
		if got.Confidence < 60 || got.Confidence > 95 {
			t.Errorf("confidence %d out of range", got.Confidence)
		}
		if got.BullshitRating < 0 || got.BullshitRating > 100 {
			t.Errorf("rating %d out of range", got.BullshitRating)
		}
		if len(got.Reasons) > 6 {
			t.Errorf("expected at most 6 reasons, got %d", len(got.Reasons))
		}
	})

	t.Run("declines short content", func(t *testing.T) {
		t.Parallel()
		content, _ := newAnalyzers(nil)
		s := NewContentStrategy(&stubFetcher{html: "<html><body>blocked</body></html>"}, content, nil)

		job := &Job{URL: target}
		ok, err := s.Attempt(context.Background(), job)
		if ok || err != nil || job.Result != nil {
			t.Errorf("expected decline, got ok=%v err=%v", ok, err)
		}
	})

	t.Run("blacklisted publisher", func(t *testing.T) {
		t.Parallel()
		content, _ := newAnalyzers(listedBlacklist{})
		s := NewContentStrategy(&stubFetcher{html: articleHTML}, content, nil)

		job := &Job{URL: target}
		if ok, err := s.Attempt(context.Background(), job); !ok || err != nil {
			t.Fatalf("expected result, got ok=%v err=%v", ok, err)
		}
		if job.Result.BullshitRating != 100 || job.Result.Confidence != 95 || !job.Result.IsBullshit() {
			t.Errorf("unexpected blacklisted result: %+v", job.Result)
		}
	})

	t.Run("untitled page uses URL title", func(t *testing.T) {
		t.Parallel()
		html := strings.Replace(articleHTML, "<title>  Council approves new budget  </title>", "<title>   </title>", 1)
		content, _ := newAnalyzers(nil)
		s := NewContentStrategy(&stubFetcher{html: html}, content, nil)

		job := &Job{URL: target}
		if ok, err := s.Attempt(context.Background(), job); !ok || err != nil {
			t.Fatalf("expected result, got ok=%v err=%v", ok, err)
		}
		if job.Result.Title != "Council Budget" {
			t.Errorf("expected URL-derived title, got %q", job.Result.Title)
		}
	})
}

// TestPlainContentStrategy tests the main-text strategy.
func TestPlainContentStrategy(t *testing.T) {
	t.Parallel()

	content, _ := newAnalyzers(nil)
	s := NewPlainContentStrategy(&stubFetcher{html: articleHTML}, content, nil)

	job := &Job{URL: "https://news.example.com/local/council-budget"}
	ok, err := s.Attempt(context.Background(), job)
	if err != nil || !ok {
		t.Fatalf("expected result, got ok=%v err=%v", ok, err)
	}
	if job.Result.Method != model.MethodText {
		t.Errorf("expected text method, got %s", job.Result.Method)
	}
	if job.Result.ContentDigest == "" {
		t.Error("expected a content digest")
	}
	if s.Name() != "plain-content" {
		t.Errorf("unexpected name %q", s.Name())
	}
}

// TestDefaultStrategyChain tests content, then URL-only, then recovery.
func TestDefaultStrategyChain(t *testing.T) {
	t.Parallel()

	build := func(html string) *Orchestrator {
		content, urlOnly := newAnalyzers(nil)
		return New(urlOnly, WithStrategies(
			NewContentStrategy(&stubFetcher{html: html}, content, nil),
			NewURLOnlyStrategy(urlOnly),
		))
	}

	t.Run("unreachable content", func(t *testing.T) {
		t.Parallel()
		got := build("").Analyze(context.Background(), bbcURL, "en")
		if got.Method != model.MethodURLOnly {
			t.Errorf("expected url-only method, got %s", got.Method)
		}
		// No penalty outside the recovery path.
		if got.Confidence != 75 {
			t.Errorf("expected confidence 75, got %d", got.Confidence)
		}
		if got.Title != "World 123" {
			t.Errorf("expected URL-derived title, got %q", got.Title)
		}
		if got.ContentDigest != "" {
			t.Errorf("expected no digest, got %q", got.ContentDigest)
		}
	})

	t.Run("links without hostname recover", func(t *testing.T) {
		t.Parallel()
		got := build(articleHTML).Analyze(context.Background(), "not-a-url", "en")
		if got.Method != model.MethodFallback {
			t.Errorf("expected fallback method, got %s", got.Method)
		}
		if got.Title != UnknownTitle {
			t.Errorf("expected %q, got %q", UnknownTitle, got.Title)
		}
		if got.Confidence != 30 {
			t.Errorf("expected confidence 30, got %d", got.Confidence)
		}
	})
}
