package votes

import "github.com/nao1215/bsdetector/internal/model"

// ComputeStats aggregates votes.
//
// AverageRating is the mean star rating rounded to one decimal.
// AccuracyRate weights each vote by its star rating: the share of rating
// points carried by votes that found the analysis accurate, as a
// percentage. No votes give all zeros.
func ComputeStats(votes []model.Vote) model.VotingStats {
	if len(votes) == 0 {
		return model.VotingStats{}
	}

	totalRating := 0
	accurateWeight := 0
	for _, v := range votes {
		totalRating += v.UserRating
		if v.WasAccurate {
			accurateWeight += v.UserRating
		}
	}

	mean := float64(totalRating) / float64(len(votes))

	accuracy := 0
	if totalRating > 0 {
		accuracy = model.RoundHalfUp(float64(accurateWeight) / float64(totalRating) * 100)
	}

	return model.VotingStats{
		TotalVotes:    len(votes),
		AverageRating: float64(model.RoundHalfUp(mean*10)) / 10,
		AccuracyRate:  accuracy,
	}
}

// AdjustRating blends an original bullshit rating with the votes on the
// same analysis. Without votes the original rating is returned unchanged.
//
// When most voters say the verdict was wrong, the rating is pulled towards
// the middle: strongly (30 points) when under 30% of at least 3 votes agree,
// moderately (20 points) when under 50% of at least 5 votes agree. The
// average star rating then shifts the result by up to 10 points either way.
func AdjustRating(original int, votes []model.Vote) int {
	if len(votes) == 0 {
		return original
	}

	accurate := 0
	totalRating := 0
	for _, v := range votes {
		if v.WasAccurate {
			accurate++
		}
		totalRating += v.UserRating
	}

	n := len(votes)
	ratio := float64(accurate) / float64(n)
	avg := float64(totalRating) / float64(n)

	adjusted := original
	switch {
	case ratio < 0.3 && n >= 3:
		if original > 60 {
			adjusted = max(30, original-30)
		} else {
			adjusted = min(70, original+30)
		}
	case ratio < 0.5 && n >= 5:
		if original > 60 {
			adjusted = max(40, original-20)
		} else {
			adjusted = min(60, original+20)
		}
	}

	return model.Clamp(model.RoundHalfUp(float64(adjusted)+(avg-3)*5), 0, 100)
}

// Community returns the community view of an analysis, or nil when nobody
// voted on it.
func Community(analysis *model.AnalysisResult, votes []model.Vote) *model.CommunityRating {
	if analysis == nil || len(votes) == 0 {
		return nil
	}
	return &model.CommunityRating{
		Rating: AdjustRating(analysis.BullshitRating, votes),
		Votes:  len(votes),
	}
}
