package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Vote constraints.
const (
	// MinUserRating is the lowest star rating a vote may carry.
	MinUserRating = 1
	// MaxUserRating is the highest star rating a vote may carry.
	MaxUserRating = 5
	// MaxFeedbackLength is the maximum feedback length in characters.
	MaxFeedbackLength = 500
)

// Vote validation errors.
var (
	// ErrVoteMissingURL is returned when a vote does not name the analysed URL.
	ErrVoteMissingURL = errors.New("vote has no analysis URL")

	// ErrVoteRatingOutOfRange is returned when the star rating is not 1-5.
	ErrVoteRatingOutOfRange = errors.New("vote rating must be between 1 and 5")

	// ErrVoteFeedbackTooLong is returned when feedback exceeds 500 characters.
	ErrVoteFeedbackTooLong = errors.New("vote feedback must be at most 500 characters")
)

// Vote is one user's feedback on an analysis. Votes are append-only: they
// are never edited or deleted, and a user may vote on the same URL many times.
type Vote struct {
	ID          string    `json:"id"`
	AnalysisURL string    `json:"analysisUrl"`
	UserRating  int       `json:"userRating"`
	Feedback    string    `json:"feedback"`
	Timestamp   time.Time `json:"timestamp"`
	WasAccurate bool      `json:"wasAccurate"`
}

// Validate checks the vote against its field constraints.
func (v *Vote) Validate() error {
	if strings.TrimSpace(v.AnalysisURL) == "" {
		return ErrVoteMissingURL
	}
	if v.UserRating < MinUserRating || v.UserRating > MaxUserRating {
		return fmt.Errorf("%w: got %d", ErrVoteRatingOutOfRange, v.UserRating)
	}
	if utf8.RuneCountInString(v.Feedback) > MaxFeedbackLength {
		return ErrVoteFeedbackTooLong
	}
	return nil
}

// VotingStats aggregates every vote in a store. It is recomputed on demand
// and never persisted.
type VotingStats struct {
	TotalVotes    int     `json:"totalVotes"`
	AverageRating float64 `json:"averageRating"`
	AccuracyRate  int     `json:"accuracyRate"`
}
