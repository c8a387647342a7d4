package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/bsdetector/internal/model"
)

// SimpleWriter outputs human-readable text reports for terminal display.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors because it works in all terminals and is easy to pipe to
// files or other tools.
type SimpleWriter struct {
	baseWriter

	// verbose enables additional detail in the output.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs one analysis in human-readable format.
func (w *SimpleWriter) Write(report *model.Report) (int, error) {
	var sb strings.Builder

	a := report.Analysis
	if a == nil {
		return 0, nil
	}

	w.writeRule(&sb, "=")
	sb.WriteString("                      BULLSHIT DETECTOR REPORT\n")
	w.writeRule(&sb, "=")
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("URL:        %s\n", a.URL))
	sb.WriteString(fmt.Sprintf("Title:      %s\n", a.Title))
	sb.WriteString(fmt.Sprintf("Analyzed:   %s\n", a.Timestamp.Format(timeFormat)))
	if w.verbose {
		sb.WriteString(fmt.Sprintf("Method:     %s\n", a.Method))
		if a.ContentDigest != "" {
			sb.WriteString(fmt.Sprintf("Digest:     %s\n", a.ContentDigest))
		}
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("  VERDICT:     %s\n", verdictLabel(a.Verdict)))
	sb.WriteString(fmt.Sprintf("  RATING:      %d/100\n", a.BullshitRating))
	sb.WriteString(fmt.Sprintf("  CONFIDENCE:  %d%%\n", a.Confidence))
	if c := report.Community; c != nil {
		sb.WriteString(fmt.Sprintf("  COMMUNITY:   %d/100 (%d votes)\n", c.Rating, c.Votes))
	}
	sb.WriteString("\n")

	w.writeRule(&sb, "-")
	sb.WriteString("REASONS\n")
	w.writeRule(&sb, "-")
	sb.WriteString("\n")

	if len(a.Reasons) == 0 {
		sb.WriteString("  No reasons recorded\n")
	}
	for _, r := range a.Reasons {
		sb.WriteString(fmt.Sprintf("  [%s] %s\n", polarityIndicator(r.Polarity), r.Text))
	}
	sb.WriteString("\n")

	return w.output.Write([]byte(sb.String()))
}

// WriteVotes outputs one line per vote.
func (w *SimpleWriter) WriteVotes(votes []model.Vote) (int, error) {
	var sb strings.Builder

	if len(votes) == 0 {
		sb.WriteString("No votes recorded\n")
		return w.output.Write([]byte(sb.String()))
	}

	for _, v := range votes {
		accurate := "inaccurate"
		if v.WasAccurate {
			accurate = "accurate"
		}
		sb.WriteString(fmt.Sprintf("%s  %d/5  %-10s  %s\n",
			v.Timestamp.Format(timeFormat), v.UserRating, accurate, v.AnalysisURL))
		if v.Feedback != "" {
			sb.WriteString(fmt.Sprintf("    %s\n", v.Feedback))
		}
		if w.verbose {
			sb.WriteString(fmt.Sprintf("    id: %s\n", v.ID))
		}
	}

	return w.output.Write([]byte(sb.String()))
}

// WriteStats outputs the vote statistics.
func (w *SimpleWriter) WriteStats(stats model.VotingStats) (int, error) {
	var sb strings.Builder

	w.writeRule(&sb, "-")
	sb.WriteString("VOTING STATISTICS\n")
	w.writeRule(&sb, "-")
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  TOTAL VOTES:     %d\n", stats.TotalVotes))
	sb.WriteString(fmt.Sprintf("  AVERAGE RATING:  %.1f/5\n", stats.AverageRating))
	sb.WriteString(fmt.Sprintf("  ACCURACY RATE:   %d%%\n", stats.AccuracyRate))
	sb.WriteString("\n")

	return w.output.Write([]byte(sb.String()))
}

func (w *SimpleWriter) writeRule(sb *strings.Builder, char string) {
	sb.WriteString(strings.Repeat(char, 70))
	sb.WriteString("\n")
}
