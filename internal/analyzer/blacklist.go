package analyzer

import (
	"context"

	"github.com/nao1215/bsdetector/internal/blacklist"
	"github.com/nao1215/bsdetector/internal/model"
)

// Blacklist is the publisher blacklist as seen by the scorers.
// *blacklist.Cache satisfies it.
type Blacklist interface {
	IsBlacklisted(ctx context.Context, rawURL string) bool
	ReasonFor(rawURL string) string
}

// blacklistedRating is the fixed rating of a blacklisted publisher.
const blacklistedRating = 100

// checkBlacklist returns the terminal score for a blacklisted publisher.
// A nil blacklist never matches.
func checkBlacklist(ctx context.Context, bl Blacklist, rawURL string, confidence int) (model.AnalysisScore, bool) {
	if bl == nil || !bl.IsBlacklisted(ctx, rawURL) {
		return model.AnalysisScore{}, false
	}
	return model.AnalysisScore{
		Verdict:        model.VerdictBullshit,
		Confidence:     confidence,
		BullshitRating: blacklistedRating,
		Reasons: []model.Reason{
			model.RedFlag(bl.ReasonFor(rawURL)),
			model.RedFlag(blacklist.ReasonListed),
		},
	}, true
}
