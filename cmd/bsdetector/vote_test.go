package main

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/nao1215/bsdetector/internal/model"
)

func TestNewVoteCmd(t *testing.T) {
	t.Parallel()

	cmd := NewVoteCmd()

	want := map[string]bool{"add": false, "list": false, "stats": false, "rating": false}
	for _, sub := range cmd.Commands() {
		want[sub.Name()] = true
	}
	for name, found := range want {
		if !found {
			t.Errorf("expected %s subcommand", name)
		}
	}

	for _, name := range []string{"json", "markdown"} {
		if cmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected %s flag", name)
		}
	}
}

// TestVoteWorkflow analyses an article, votes on it and reads the votes back
// through every vote subcommand, sharing one SQLite database.
func TestVoteWorkflow(t *testing.T) {
	const target = "https://news.example.com/local/council-budget"

	srv := newBackendServer(t, target)
	cfgPath := writeTestConfig(t, srv.URL, t.TempDir())

	run := func(t *testing.T, args ...string) string {
		t.Helper()
		stdout, stderr, err := runCLI(t, append(args, "--config", cfgPath)...)
		if err != nil {
			t.Fatalf("%v failed: %v\nstderr: %s", args, err, stderr)
		}
		return stdout
	}

	run(t, "analyze", target)

	out := run(t, "vote", "add", target, "--rating", "5", "--accurate", "--feedback", "  spot on \n")
	if !strings.Contains(out, "Recorded vote") {
		t.Errorf("expected confirmation, got %q", out)
	}
	run(t, "vote", "add", target, "-r", "4", "-a")

	t.Run("list as JSON", func(t *testing.T) {
		var votes []model.Vote
		if err := json.Unmarshal([]byte(run(t, "vote", "list", target, "--json")), &votes); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(votes) != 2 {
			t.Fatalf("expected 2 votes, got %d", len(votes))
		}
		if votes[0].Feedback != "spot on" || votes[0].UserRating != 5 {
			t.Errorf("unexpected first vote %+v", votes[0])
		}
		if votes[0].ID == "" || votes[0].ID == votes[1].ID {
			t.Errorf("expected distinct vote IDs, got %q and %q", votes[0].ID, votes[1].ID)
		}
		if votes[1].Timestamp.IsZero() {
			t.Error("expected vote timestamp to be set")
		}
	})

	t.Run("list other URL", func(t *testing.T) {
		out := run(t, "vote", "list", "https://other.example.com/")
		if !strings.Contains(out, "No votes recorded") {
			t.Errorf("expected no votes, got %q", out)
		}
	})

	t.Run("stats", func(t *testing.T) {
		out := run(t, "vote", "stats")
		for _, want := range []string{"TOTAL VOTES:     2", "AVERAGE RATING:  4.5/5", "ACCURACY RATE:   100%"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in:\n%s", want, out)
			}
		}
	})

	t.Run("rating of stored analysis", func(t *testing.T) {
		out, stderr, err := runCLI(t, "vote", "rating", target, "--config", cfgPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out, "(2 votes)") {
			t.Errorf("expected community rating in report, got:\n%s", out)
		}
		if !strings.Contains(stderr, "Latest of 1 stored analyses of "+target) {
			t.Errorf("expected analysis history count on stderr, got %q", stderr)
		}
	})

	t.Run("rating with original", func(t *testing.T) {
		// Average 4.5 stars lifts 50 by 7.5, rounded half up.
		out := run(t, "vote", "rating", target, "--original", "50")
		if strings.TrimSpace(out) != "58" {
			t.Errorf("expected 58, got %q", out)
		}
	})
}

func TestVoteErrors(t *testing.T) {
	srv := newBackendServer(t)
	cfgPath := writeTestConfig(t, srv.URL, t.TempDir())

	t.Run("rating out of range", func(t *testing.T) {
		_, _, err := runCLI(t, "vote", "add", "https://example.com/x", "--rating", "6", "-a", "--config", cfgPath)
		if !errors.Is(err, model.ErrVoteRatingOutOfRange) {
			t.Errorf("expected ErrVoteRatingOutOfRange, got %v", err)
		}
	})

	t.Run("rating flag required", func(t *testing.T) {
		_, _, err := runCLI(t, "vote", "add", "https://example.com/x", "-a", "--config", cfgPath)
		if err == nil || !strings.Contains(err.Error(), "rating") {
			t.Errorf("expected missing rating error, got %v", err)
		}
	})

	t.Run("accuracy answer required", func(t *testing.T) {
		_, _, err := runCLI(t, "vote", "add", "https://example.com/x", "-r", "3", "--config", cfgPath)
		if err == nil || !strings.Contains(err.Error(), "accurate") {
			t.Errorf("expected missing accuracy error, got %v", err)
		}
	})

	t.Run("accurate and inaccurate conflict", func(t *testing.T) {
		_, _, err := runCLI(t, "vote", "add", "https://example.com/x", "-r", "3", "-a", "-i", "--config", cfgPath)
		if err == nil || !strings.Contains(err.Error(), "inaccurate") {
			t.Errorf("expected conflicting accuracy error, got %v", err)
		}
	})

	t.Run("feedback too long", func(t *testing.T) {
		feedback := strings.Repeat("x", model.MaxFeedbackLength+1)
		_, _, err := runCLI(t, "vote", "add", "https://example.com/x", "-r", "3", "-i", "-f", feedback, "--config", cfgPath)
		if !errors.Is(err, model.ErrVoteFeedbackTooLong) {
			t.Errorf("expected ErrVoteFeedbackTooLong, got %v", err)
		}
	})

	t.Run("no stored analysis", func(t *testing.T) {
		_, _, err := runCLI(t, "vote", "rating", "https://never.example.com/", "--config", cfgPath)
		if !errors.Is(err, ErrNoStoredAnalysis) {
			t.Errorf("expected ErrNoStoredAnalysis, got %v", err)
		}
	})

	t.Run("original out of range", func(t *testing.T) {
		_, _, err := runCLI(t, "vote", "rating", "https://example.com/x", "--original", "101", "--config", cfgPath)
		if err == nil {
			t.Error("expected error for --original 101")
		}
	})
}
