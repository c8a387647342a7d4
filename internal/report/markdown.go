package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/bsdetector/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation, which gives us tables, GitHub-flavored alerts and mermaid
// charts without hand-built strings.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs one analysis in Markdown format.
func (w *MarkdownWriter) Write(report *model.Report) (int, error) {
	a := report.Analysis
	if a == nil {
		return 0, nil
	}

	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeVerdict(md, a)
	w.writeReasons(md, a.Reasons)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the analysis summary table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.Report) {
	a := report.Analysis

	md.H1("Bullshit Detector Report")
	md.PlainText("")

	rows := [][]string{
		{"URL", "`" + a.URL + "`"},
		{"Title", a.Title},
		{"Analyzed", a.Timestamp.Format(timeFormat)},
		{"Verdict", "**" + verdictLabel(a.Verdict) + "**"},
		{"Bullshit Rating", strconv.Itoa(a.BullshitRating) + "/100"},
		{"Confidence", strconv.Itoa(a.Confidence) + "%"},
	}
	if a.Method != "" {
		rows = append(rows, []string{"Method", string(a.Method)})
	}
	if c := report.Community; c != nil {
		rows = append(rows, []string{"Community Rating", fmt.Sprintf("%d/100 (%d votes)", c.Rating, c.Votes)})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeVerdict writes an alert matching the verdict.
func (w *MarkdownWriter) writeVerdict(md *markdown.Markdown, a *model.AnalysisResult) {
	switch {
	case a.IsBullshit():
		md.Cautionf("This article is likely misleading (rating %d/100, confidence %d%%).", a.BullshitRating, a.Confidence)
	case a.Method == model.MethodFallback || a.Method == model.MethodURLOnly:
		md.Warningf("Only the URL could be analyzed (rating %d/100, confidence %d%%).", a.BullshitRating, a.Confidence)
	default:
		md.Tip(fmt.Sprintf("No strong signs of bullshit found (rating %d/100, confidence %d%%).", a.BullshitRating, a.Confidence))
	}
	md.PlainText("")
}

// writeReasons writes the reasons table.
func (w *MarkdownWriter) writeReasons(md *markdown.Markdown, reasons []model.Reason) {
	md.H2("Reasons")
	md.PlainText("")

	if len(reasons) == 0 {
		md.PlainText("No reasons recorded.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(reasons))
	for i, r := range reasons {
		rows[i] = []string{r.Text, polarityLabel(r.Polarity)}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Reason", "Kind"},
		Rows:   rows,
	})
	md.PlainText("")
}

// WriteVotes outputs the votes as a table.
func (w *MarkdownWriter) WriteVotes(votes []model.Vote) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H2("Votes")
	md.PlainText("")

	if len(votes) == 0 {
		md.PlainText("No votes recorded.")
		return len(md.String()), md.Build()
	}

	rows := make([][]string, len(votes))
	for i, v := range votes {
		accurate := "No"
		if v.WasAccurate {
			accurate = "Yes"
		}
		feedback := v.Feedback
		if feedback == "" {
			feedback = "-"
		}
		rows[i] = []string{
			v.Timestamp.Format(timeFormat),
			"`" + v.AnalysisURL + "`",
			strconv.Itoa(v.UserRating) + "/5",
			accurate,
			truncateString(feedback, 60),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Date", "URL", "Rating", "Accurate", "Feedback"},
		Rows:   rows,
	})

	return len(md.String()), md.Build()
}

// WriteStats outputs the statistics with an accuracy chart.
func (w *MarkdownWriter) WriteStats(stats model.VotingStats) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H2("Voting Statistics")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total Votes", strconv.Itoa(stats.TotalVotes)},
			{"Average Rating", strconv.FormatFloat(stats.AverageRating, 'f', 1, 64) + "/5"},
			{"Accuracy Rate", strconv.Itoa(stats.AccuracyRate) + "%"},
		},
	})
	md.PlainText("")

	if stats.TotalVotes > 0 {
		chart := piechart.NewPieChart(
			io.Discard,
			piechart.WithTitle("Rating-weighted accuracy"),
			piechart.WithShowData(true),
		)
		chart.LabelAndIntValue("Accurate", uint64(stats.AccuracyRate))
		chart.LabelAndIntValue("Inaccurate", uint64(100-stats.AccuracyRate))

		md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
		md.PlainText("")
	}

	return len(md.String()), md.Build()
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by [bsdetector](https://github.com/nao1215/bsdetector)*")
}

// truncateString truncates a string to maxLen characters with ellipsis.
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
