package model

import (
	"encoding/hex"
	"math"
	"time"

	"golang.org/x/crypto/sha3"
)

// Verdict is the binary classification derived from a bullshit rating.
type Verdict string

const (
	// VerdictBullshit means the article is likely misleading.
	VerdictBullshit Verdict = "bullshit"
	// VerdictOK means no threshold was crossed.
	VerdictOK Verdict = "ok"
)

// String returns the verdict as text.
func (v Verdict) String() string {
	return string(v)
}

// Method records which analysis strategy produced a result.
type Method string

const (
	// MethodStructured is a full analysis of fetched and extracted HTML.
	MethodStructured Method = "structured"
	// MethodText is an analysis of the extracted main text without the
	// structural checks.
	MethodText Method = "text"
	// MethodURLOnly is an analysis of the URL string alone because no usable
	// HTML could be retrieved.
	MethodURLOnly Method = "url_only"
	// MethodFallback is the URL-only analysis run after an unexpected failure.
	MethodFallback Method = "fallback"
)

// Polarity tags a reason with the direction it pushed the rating.
//
// Design decision: The URL-only rule tables push both red flags and
// credibility matches into one reasons list. Tagging each entry keeps the
// list ordered exactly as it was accumulated while letting renderers tell a
// "credible outlet" match apart from a warning.
type Polarity string

const (
	// PolarityRedFlag increased the rating (less credible).
	PolarityRedFlag Polarity = "red_flag"
	// PolarityCredibility decreased the rating (more credible).
	PolarityCredibility Polarity = "credibility"
	// PolarityNeutral did not change the rating (notes and warnings).
	PolarityNeutral Polarity = "neutral"
)

// Reason is one short explanation attached to a score.
type Reason struct {
	Text     string   `json:"text"`
	Polarity Polarity `json:"polarity"`
}

// RedFlag returns a reason with red-flag polarity.
func RedFlag(text string) Reason {
	return Reason{Text: text, Polarity: PolarityRedFlag}
}

// Credibility returns a reason with credibility polarity.
func Credibility(text string) Reason {
	return Reason{Text: text, Polarity: PolarityCredibility}
}

// Note returns a reason with neutral polarity.
func Note(text string) Reason {
	return Reason{Text: text, Polarity: PolarityNeutral}
}

// ReasonTexts returns only the text of each reason, in order.
func ReasonTexts(reasons []Reason) []string {
	texts := make([]string, len(reasons))
	for i, r := range reasons {
		texts[i] = r.Text
	}
	return texts
}

// AnalysisScore is the output of a single scorer.
type AnalysisScore struct {
	Verdict        Verdict  `json:"verdict"`
	Confidence     int      `json:"confidence"`
	BullshitRating int      `json:"bullshitRating"`
	Reasons        []Reason `json:"reasons"`
}

// AnalysisResult is one analysis of one URL.
// A result is never updated after creation; analysing the same URL again
// produces a new result.
type AnalysisResult struct {
	// URL is the analysed article URL exactly as given.
	URL string `json:"url"`

	// Title is the page title, or a title derived from the URL.
	Title string `json:"title"`

	// Verdict is bullshit or ok.
	Verdict Verdict `json:"verdict"`

	// Confidence is 0-100 and expresses how much evidence backed the verdict.
	Confidence int `json:"confidence"`

	// Reasons lists at most six short explanations.
	Reasons []Reason `json:"reasons"`

	// Timestamp is when the analysis finished.
	Timestamp time.Time `json:"timestamp"`

	// BullshitRating is 0-100; higher means less credible.
	BullshitRating int `json:"bullshitRating"`

	// Method is the strategy that produced the result.
	Method Method `json:"method,omitempty"`

	// ContentDigest is the SHA3-256 hex digest of the HTML that was scored.
	// Empty when the result was derived from the URL alone.
	ContentDigest string `json:"contentDigest,omitempty"`
}

// NewAnalysisResult wraps a score into a result stamped with the current time.
func NewAnalysisResult(url, title string, score AnalysisScore, method Method) *AnalysisResult {
	reasons := make([]Reason, len(score.Reasons))
	copy(reasons, score.Reasons)

	return &AnalysisResult{
		URL:            url,
		Title:          title,
		Verdict:        score.Verdict,
		Confidence:     Clamp(score.Confidence, 0, 100),
		Reasons:        reasons,
		Timestamp:      time.Now(),
		BullshitRating: Clamp(score.BullshitRating, 0, 100),
		Method:         method,
	}
}

// IsBullshit reports whether the verdict is bullshit.
func (r *AnalysisResult) IsBullshit() bool {
	return r.Verdict == VerdictBullshit
}

// Clamp limits v to the closed interval [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// RoundHalfUp rounds to the nearest integer, with halves rounded towards
// positive infinity (-2.5 rounds to -2, 2.5 to 3). Scores computed from the
// same inputs must round identically wherever they are recomputed.
func RoundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// ContentDigest returns the SHA3-256 hex digest of the retrieved HTML.
// Empty content produces an empty digest.
func ContentDigest(html string) string {
	if html == "" {
		return ""
	}
	sum := sha3.Sum256([]byte(html))
	return hex.EncodeToString(sum[:])
}
