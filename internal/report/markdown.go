package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/allurefw/report/internal/model"
)

// MarkdownWriter outputs the build summary in Markdown format.
// This format is designed for CI logs and the summary.md file written
// next to the report artifact.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the build summary in Markdown format.
func (w *MarkdownWriter) Write(data *model.ReportData) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, data)
	w.writeOutcomes(md, data)
	w.writeSources(md, data)
	w.writeDegraded(md, data)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the report header with build information.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, data *model.ReportData) {
	md.H1(data.Name)
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Generated", data.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
			{"Results", strconv.Itoa(data.Statistic.Total)},
			{"Sources", strconv.Itoa(len(data.Sources))},
			{"Widgets", strconv.Itoa(len(data.Widgets))},
		},
	})
	md.PlainText("")
}

// writeOutcomes writes the outcome summary section.
func (w *MarkdownWriter) writeOutcomes(md *markdown.Markdown, data *model.ReportData) {
	md.H2("Outcome Summary")
	md.PlainText("")

	stat := data.Statistic
	md.Table(markdown.TableSet{
		Header: []string{"Outcome", "Count"},
		Rows: [][]string{
			{"✅ Passed", strconv.Itoa(stat.Passed)},
			{"❌ Failed", strconv.Itoa(stat.Failed)},
			{"💥 Broken", strconv.Itoa(stat.Broken)},
			{"⏭️ Skipped", strconv.Itoa(stat.Skipped)},
			{"❓ Unknown", strconv.Itoa(stat.Unknown)},
			{"**Total**", "**" + strconv.Itoa(stat.Total) + "**"},
		},
	})
	md.PlainText("")

	if stat.Total > 0 {
		md.PlainTextf("Success rate: **%.1f%%**", stat.SuccessRate()*100)
		md.PlainText("")
		w.writePieChart(md, stat)
	}

	w.writeAlert(md, data)
}

// writePieChart writes a mermaid pie chart of the outcome distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, stat model.Statistic) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Test Outcome Distribution"),
		piechart.WithShowData(true),
	)

	if stat.Passed > 0 {
		chart.LabelAndIntValue("Passed", uint64(stat.Passed))
	}
	if stat.Failed > 0 {
		chart.LabelAndIntValue("Failed", uint64(stat.Failed))
	}
	if stat.Broken > 0 {
		chart.LabelAndIntValue("Broken", uint64(stat.Broken))
	}
	if stat.Skipped > 0 {
		chart.LabelAndIntValue("Skipped", uint64(stat.Skipped))
	}
	if stat.Unknown > 0 {
		chart.LabelAndIntValue("Unknown", uint64(stat.Unknown))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an appropriate alert based on the build outcome.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, data *model.ReportData) {
	stat := data.Statistic
	switch {
	case stat.Failed > 0:
		md.Cautionf("%d test(s) failed.", stat.Failed)
	case stat.Broken > 0:
		md.Warningf("%d test(s) broke before producing a verdict.", stat.Broken)
	case len(data.DegradedPlugins) > 0:
		md.Importantf("The report is degraded: %d plugin(s) are missing assets.", len(data.DegradedPlugins))
	case stat.Total == 0:
		md.Note("No test results were found in the input directories.")
	default:
		md.Tip("All tests passed.")
	}
	md.PlainText("")
}

// writeSources writes the result source section.
func (w *MarkdownWriter) writeSources(md *markdown.Markdown, data *model.ReportData) {
	md.H2("Result Sources")
	md.PlainText("")

	if len(data.Sources) == 0 {
		md.PlainText("No input directories were probed.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(data.Sources))
	for i, src := range data.Sources {
		rows[i] = []string{
			"`" + src.Path + "`",
			src.Format,
			strconv.Itoa(src.ResultCount),
		}
	}

	md.Table(markdown.TableSet{
		Header: []string{"Directory", "Format", "Results"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeDegraded writes the degraded plugin section when there is one.
func (w *MarkdownWriter) writeDegraded(md *markdown.Markdown, data *model.ReportData) {
	if len(data.DegradedPlugins) == 0 {
		return
	}

	md.H2("Degraded Plugins")
	md.PlainText("")
	md.PlainText("These plugins are listed on the entry page but their assets could not be unpacked:")
	md.PlainText("")

	items := make([]string, len(data.DegradedPlugins))
	for i, name := range data.DegradedPlugins {
		items[i] = fmt.Sprintf("`%s`", name)
	}
	md.BulletList(items...)
	md.PlainText("")
}

// writeFooter writes the summary footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Generated by [allure-report](https://github.com/allurefw/report)*")
}
