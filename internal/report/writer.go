package report

import (
	"io"

	"github.com/nao1215/bsdetector/internal/model"
)

// Writer defines the interface for report output.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files or stdout with the same
// API.
type Writer interface {
	// Write outputs one analysis report.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.Report) (int, error)

	// WriteVotes outputs a list of votes.
	WriteVotes(votes []model.Vote) (int, error)

	// WriteStats outputs aggregated vote statistics.
	WriteStats(stats model.VotingStats) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because our Writer interface is different
// from io.Writer - we write reports, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(report *model.Report) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.Write(report) })
}

// WriteVotes outputs the votes to all configured Writers.
func (m *MultiWriter) WriteVotes(votes []model.Vote) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteVotes(votes) })
}

// WriteStats outputs the statistics to all configured Writers.
func (m *MultiWriter) WriteStats(stats model.VotingStats) (int, error) {
	return m.each(func(w Writer) (int, error) { return w.WriteStats(stats) })
}

func (m *MultiWriter) each(write func(Writer) (int, error)) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := write(w)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// timeFormat is used for every timestamp in text and Markdown reports.
const timeFormat = "2006-01-02 15:04:05 MST"

// verdictLabel returns the display label of a verdict.
func verdictLabel(v model.Verdict) string {
	if v == model.VerdictBullshit {
		return "BULLSHIT"
	}
	return "OK"
}

// polarityIndicator returns a short marker for a reason's polarity.
func polarityIndicator(p model.Polarity) string {
	switch p {
	case model.PolarityRedFlag:
		return "!"
	case model.PolarityCredibility:
		return "+"
	default:
		return "i"
	}
}

// polarityLabel returns the display label of a polarity.
func polarityLabel(p model.Polarity) string {
	switch p {
	case model.PolarityRedFlag:
		return "Red flag"
	case model.PolarityCredibility:
		return "Credibility"
	default:
		return "Note"
	}
}
