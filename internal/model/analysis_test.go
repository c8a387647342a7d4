package model

import (
	"errors"
	"strings"
	"testing"
)

// TestClamp tests the Clamp helper.
func TestClamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		v, lo, hi int
		want      int
	}{
		{name: "below range", v: -20, lo: 0, hi: 100, want: 0},
		{name: "above range", v: 150, lo: 0, hi: 100, want: 100},
		{name: "inside range", v: 42, lo: 0, hi: 100, want: 42},
		{name: "lower bound", v: 60, lo: 60, hi: 95, want: 60},
		{name: "upper bound", v: 95, lo: 60, hi: 95, want: 95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
				t.Errorf("Clamp(%d, %d, %d) = %d, want %d", tt.v, tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}

// TestNewAnalysisResult tests wrapping a score into a result.
func TestNewAnalysisResult(t *testing.T) {
	t.Parallel()

	score := AnalysisScore{
		Verdict:        VerdictBullshit,
		Confidence:     120,
		BullshitRating: 80,
		Reasons:        []Reason{RedFlag("Suspicious free domain extension")},
	}

	result := NewAnalysisResult("https://x.tk/a", "A", score, MethodURLOnly)

	if result.Confidence != 100 {
		t.Errorf("expected confidence clamped to 100, got %d", result.Confidence)
	}
	if !result.IsBullshit() {
		t.Error("expected bullshit verdict")
	}
	if result.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}
	if result.Method != MethodURLOnly {
		t.Errorf("expected method url_only, got %q", result.Method)
	}

	// The result owns its reasons.
	score.Reasons[0] = Note("changed")
	if result.Reasons[0].Text != "Suspicious free domain extension" {
		t.Errorf("expected result reasons to be copied, got %q", result.Reasons[0].Text)
	}
}

// TestReasonConstructors tests the polarity of the reason helpers.
func TestReasonConstructors(t *testing.T) {
	t.Parallel()

	reasons := []Reason{RedFlag("a"), Credibility("b"), Note("c")}
	want := []Polarity{PolarityRedFlag, PolarityCredibility, PolarityNeutral}

	for i, r := range reasons {
		if r.Polarity != want[i] {
			t.Errorf("reason %d: expected polarity %q, got %q", i, want[i], r.Polarity)
		}
	}

	if got := strings.Join(ReasonTexts(reasons), ","); got != "a,b,c" {
		t.Errorf("expected texts a,b,c, got %q", got)
	}
}

// TestContentDigest tests the ContentDigest helper.
func TestContentDigest(t *testing.T) {
	t.Parallel()

	t.Run("computes SHA3-256 of the content", func(t *testing.T) {
		t.Parallel()

		// SHA3-256 of "abc"
		expected := "3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532"
		if got := ContentDigest("abc"); got != expected {
			t.Errorf("got %q, expected %q", got, expected)
		}
	})

	t.Run("empty content produces empty digest", func(t *testing.T) {
		t.Parallel()
		if got := ContentDigest(""); got != "" {
			t.Errorf("expected empty digest, got %q", got)
		}
	})
}

// TestHeadingsAll tests heading order.
func TestHeadingsAll(t *testing.T) {
	t.Parallel()

	h := Headings{H1: []string{"a"}, H3: []string{"c"}, H6: []string{"f"}}
	if got := strings.Join(h.All(), ""); got != "acf" {
		t.Errorf("expected acf, got %q", got)
	}
}

// TestVoteValidate tests the vote field constraints.
func TestVoteValidate(t *testing.T) {
	t.Parallel()

	valid := func() Vote {
		return Vote{AnalysisURL: "https://example.com/a", UserRating: 3}
	}

	tests := []struct {
		name    string
		modify  func(*Vote)
		wantErr error
	}{
		{name: "valid vote", modify: func(*Vote) {}},
		{name: "missing URL", modify: func(v *Vote) { v.AnalysisURL = "  " }, wantErr: ErrVoteMissingURL},
		{name: "rating zero", modify: func(v *Vote) { v.UserRating = 0 }, wantErr: ErrVoteRatingOutOfRange},
		{name: "rating six", modify: func(v *Vote) { v.UserRating = 6 }, wantErr: ErrVoteRatingOutOfRange},
		{name: "rating one", modify: func(v *Vote) { v.UserRating = 1 }},
		{name: "rating five", modify: func(v *Vote) { v.UserRating = 5 }},
		{name: "feedback at limit", modify: func(v *Vote) { v.Feedback = strings.Repeat("ü", 500) }},
		{name: "feedback too long", modify: func(v *Vote) { v.Feedback = strings.Repeat("a", 501) }, wantErr: ErrVoteFeedbackTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v := valid()
			tt.modify(&v)

			err := v.Validate()
			if tt.wantErr == nil && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

// TestRoundHalfUp tests rounding of halves.
func TestRoundHalfUp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want int
	}{
		{in: 2.5, want: 3},
		{in: 2.49, want: 2},
		{in: -2.5, want: -2},
		{in: -2.51, want: -3},
		{in: 0, want: 0},
	}

	for _, tt := range tests {
		if got := RoundHalfUp(tt.in); got != tt.want {
			t.Errorf("RoundHalfUp(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
