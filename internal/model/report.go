package model

// CommunityRating is the display-time rating blended with user votes.
type CommunityRating struct {
	// Rating is the community-adjusted bullshit rating (0-100).
	Rating int `json:"rating"`

	// Votes is the number of votes the rating is based on.
	Votes int `json:"votes"`
}

// Report is what the report writers render: one analysis and, optionally,
// the community view of it.
type Report struct {
	Analysis  *AnalysisResult  `json:"analysis"`
	Community *CommunityRating `json:"community,omitempty"`
}

// NewReport creates a report for an analysis without community data.
func NewReport(analysis *AnalysisResult) *Report {
	return &Report{Analysis: analysis}
}
