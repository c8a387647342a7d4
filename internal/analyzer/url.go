package analyzer

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/nao1215/bsdetector/internal/model"
)

// URL-only scoring constants.
const (
	// urlOnlyThreshold is the rating a URL-only analysis must exceed for a
	// bullshit verdict.
	urlOnlyThreshold = 60

	// urlOnlyBlacklistConfidence is the confidence of a blacklist hit when
	// only the URL is known.
	urlOnlyBlacklistConfidence = 90

	// urlOnlyMaxReasons caps the reasons of a URL-only analysis.
	urlOnlyMaxReasons = 4

	// ReasonURLOnly is reported when no URL rule fired.
	ReasonURLOnly = "Limited analysis based on URL only"
)

// urlSuspiciousRules flag domains typical of throwaway or impersonating sites.
var urlSuspiciousRules = []Rule{
	rule(`(?i)\.tk$|\.ml$|\.ga$|\.cf$|\.pw$|\.top$`, 40, "Suspicious free domain extension"),
	rule(`(?i)news-?\w*\d+\.com|real\w*news|truth\w*news|fake\w*news`, 35, "Suspicious news-style domain name"),
	rule(`(?i)\d{4,}\.com$|\w+\d{3,}\.com$`, 30, "Random numeric domain name"),
	rule(`(?i)wordpress\.com|blogspot\.com|medium\.com\/[^\/]*$`, 15, "Personal blog platform"),
	rule(`(?i)\.info$|\.biz$|\.click$`, 20, "Lower-trust domain extension"),
}

// urlCredibleRules recognize established outlets and institutions.
var urlCredibleRules = []Rule{
	rule(`(?i)bbc\.com|cnn\.com|reuters\.com|ap\.org|npr\.org`, -25, "Established mainstream news source"),
	rule(`(?i)nytimes\.com|washingtonpost\.com|wsj\.com|guardian\.com|theguardian\.com`, -25, "Reputable newspaper"),
	rule(`(?i)economist\.com|time\.com|newsweek\.com|politico\.com|axios\.com`, -20, "Known credible publication"),
	rule(`(?i)\.gov$|\.edu$|\.org$`, -15, "Institutional domain"),
	rule(`(?i)tagesschau\.de|spiegel\.de|zeit\.de|sueddeutsche\.de|faz\.net`, -20, "Reputable German news source"),
}

// clickbaitKeywords are matched case-sensitively anywhere in the URL.
var clickbaitKeywords = []string{"clickbait", "viral", "shocking"}

var socialTrackingPattern = regexp.MustCompile(`\?utm_|&utm_|facebook|twitter|social`)

// URLAnalyzer scores an article from its URL alone.
type URLAnalyzer struct {
	blacklist Blacklist
	logger    *slog.Logger
}

// NewURLAnalyzer creates a URL-only scorer. A nil blacklist disables the
// blacklist short-circuit.
func NewURLAnalyzer(bl Blacklist, opts ...Option) *URLAnalyzer {
	o := newOptions(opts)
	return &URLAnalyzer{blacklist: bl, logger: o.logger}
}

// Analyze scores the URL string.
//
// Credible-outlet matches lower the score and are reported in the same
// ordered reasons list as red flags, tagged with credibility polarity.
func (a *URLAnalyzer) Analyze(ctx context.Context, rawURL string) model.AnalysisScore {
	if score, hit := checkBlacklist(ctx, a.blacklist, rawURL, urlOnlyBlacklistConfidence); hit {
		a.logger.Debug("blacklisted publisher in URL-only analysis", "url", rawURL)
		return score
	}

	var t tally
	t.applyRules(urlSuspiciousRules, rawURL)
	t.applyRules(urlCredibleRules, rawURL)

	for _, kw := range clickbaitKeywords {
		if strings.Contains(rawURL, kw) {
			t.add(25, "URL contains clickbait-style keywords")
			break
		}
	}

	if socialTrackingPattern.MatchString(rawURL) {
		t.add(10, "URL shows social media tracking (viral spread pattern)")
	}

	r := rating(t.score)
	reasons := firstN(t.all, urlOnlyMaxReasons)
	if len(reasons) == 0 {
		reasons = []model.Reason{model.Note(ReasonURLOnly)}
	}

	a.logger.Debug("URL-only analysis complete", "url", rawURL, "score", t.score, "rating", r)

	return model.AnalysisScore{
		Verdict:        verdict(r, urlOnlyThreshold),
		Confidence:     model.Clamp(abs(t.score)+50, 40, 80),
		BullshitRating: r,
		Reasons:        reasons,
	}
}
