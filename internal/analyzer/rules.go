package analyzer

import (
	"regexp"

	"github.com/nao1215/bsdetector/internal/model"
)

// Rule adds Score to the tally and records Reason when Pattern matches.
// Positive scores are red flags, negative scores are credibility signals.
type Rule struct {
	Pattern *regexp.Regexp
	Score   int
	Reason  string
}

// rule compiles a rule. Patterns are package constants, so a compile error
// is a programming error.
func rule(pattern string, score int, reason string) Rule {
	return Rule{Pattern: regexp.MustCompile(pattern), Score: score, Reason: reason}
}

// Band is one step of a Ladder.
type Band[T any] struct {
	When   func(T) bool
	Score  int
	Reason string
}

// Ladder is an ordered list of mutually exclusive bands. Only the first band
// whose predicate holds fires.
type Ladder[T any] []Band[T]

// Evaluate returns the first band matching v.
func (l Ladder[T]) Evaluate(v T) (Band[T], bool) {
	for _, band := range l {
		if band.When(v) {
			return band, true
		}
	}
	return Band[T]{}, false
}

// tally accumulates a score and its reasons.
type tally struct {
	score       int
	redFlags    []model.Reason
	credibility []model.Reason

	// all holds every reason in the order it was added.
	all []model.Reason
}

// add applies a weight. The reason's polarity follows the sign of the weight.
func (t *tally) add(score int, reason string) {
	t.score += score
	if score < 0 {
		r := model.Credibility(reason)
		t.credibility = append(t.credibility, r)
		t.all = append(t.all, r)
		return
	}
	r := model.RedFlag(reason)
	t.redFlags = append(t.redFlags, r)
	t.all = append(t.all, r)
}

// applyRules fires every rule whose pattern matches s, in table order.
func (t *tally) applyRules(rules []Rule, s string) {
	for _, r := range rules {
		if r.Pattern.MatchString(s) {
			t.add(r.Score, r.Reason)
		}
	}
}

// climb fires the first matching band of a ladder, if any.
func climb[T any](t *tally, ladder Ladder[T], v T) {
	if band, ok := ladder.Evaluate(v); ok {
		t.add(band.Score, band.Reason)
	}
}

// countMatches counts the non-overlapping matches of every pattern in s.
func countMatches(patterns []*regexp.Regexp, s string) int {
	count := 0
	for _, p := range patterns {
		count += len(p.FindAllStringIndex(s, -1))
	}
	return count
}

// rating turns a raw score into a 0-100 bullshit rating.
func rating(score int) int {
	return model.Clamp(score+50, 0, 100)
}

// abs returns the absolute value of v.
func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// verdict returns bullshit when the rating exceeds the threshold.
func verdict(rating, threshold int) model.Verdict {
	if rating > threshold {
		return model.VerdictBullshit
	}
	return model.VerdictOK
}

// firstN returns at most n reasons.
func firstN(reasons []model.Reason, n int) []model.Reason {
	if len(reasons) > n {
		reasons = reasons[:n]
	}
	out := make([]model.Reason, len(reasons))
	copy(out, reasons)
	return out
}
