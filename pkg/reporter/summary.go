package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yaklabco/gomdtable/pkg/analysis"
	"github.com/yaklabco/gomdtable/pkg/runner"
	"github.com/yaklabco/gomdtable/pkg/tablefmt"
)

var (
	countAlign = []tablefmt.Alignment{
		tablefmt.AlignLeft, tablefmt.AlignRight, tablefmt.AlignRight, tablefmt.AlignRight, tablefmt.AlignRight,
	}
	fileAlign = countAlign[:4]
)

// SummaryReporter writes per-rule and per-file totals as aligned GFM
// tables, ready to paste into a pull request or a CI job summary.
type SummaryReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewSummaryReporter creates a SummaryReporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	return &SummaryReporter{opts: opts, bw: bufio.NewWriterSize(opts.Writer, bufWriterSize)}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	report := analysis.Analyze(result, func(p string) string { return displayPath(p, r.opts.WorkingDir) })
	if report.Totals.Issues == 0 {
		fmt.Fprintln(r.bw, "No issues found.")
		return 0, nil
	}

	rules := [][]string{{"Rule", "Issues", "Errors", "Warnings", "Fixable"}}
	for _, rt := range report.ByRule {
		rules = append(rules, []string{
			escapePipes(r.opts.RuleFormat.Render(rt.RuleID, rt.RuleName)),
			strconv.Itoa(rt.Issues), strconv.Itoa(rt.Errors), strconv.Itoa(rt.Warnings), strconv.Itoa(rt.Fixable),
		})
	}
	writeTable(r.bw, rules, countAlign)
	fmt.Fprintln(r.bw)

	files := [][]string{{"File", "Issues", "Errors", "Warnings"}}
	for _, ft := range report.ByFile {
		files = append(files, []string{
			escapePipes(ft.Path),
			strconv.Itoa(ft.Issues), strconv.Itoa(ft.Errors), strconv.Itoa(ft.Warnings),
		})
	}
	writeTable(r.bw, files, fileAlign)
	fmt.Fprintln(r.bw)

	fmt.Fprintf(r.bw, "**Total:** %s in %s\n",
		totalsBreakdown(report.Totals), plural(len(report.ByFile), "file", "files"))

	return report.Totals.Issues, nil
}

// writeTable renders rows, the first being the header, in canonical layout.
func writeTable(w io.Writer, rows [][]string, align []tablefmt.Alignment) {
	widths := make([]int, len(align))
	for _, row := range rows {
		for c, v := range row {
			widths[c] = max(widths[c], tablefmt.Width(v), 3)
		}
	}

	fmt.Fprintln(w, tablefmt.RenderRow(rows[0], widths, align))
	fmt.Fprintln(w, tablefmt.RenderDelimiter(widths, align))
	for _, row := range rows[1:] {
		fmt.Fprintln(w, tablefmt.RenderRow(row, widths, align))
	}
}

func totalsBreakdown(c analysis.Counts) string {
	var parts []string
	if c.Errors > 0 {
		parts = append(parts, plural(c.Errors, "error", "errors"))
	}
	if c.Warnings > 0 {
		parts = append(parts, plural(c.Warnings, "warning", "warnings"))
	}
	if c.Infos > 0 {
		parts = append(parts, plural(c.Infos, "info", "infos"))
	}
	return plural(c.Issues, "issue", "issues") + " (" + strings.Join(parts, ", ") + ")"
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
