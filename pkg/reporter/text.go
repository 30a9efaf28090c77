package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gomdtable/internal/ui/pretty"
	"github.com/yaklabco/gomdtable/pkg/lint"
	"github.com/yaklabco/gomdtable/pkg/runner"
)

// contextMargin is the indent pretty puts before source context.
const contextMargin = 8

// TextReporter formats results as styled terminal output, grouped by file.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
	width  int
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
		width:  opts.width(),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		total += r.reportFile(file)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

func (r *TextReporter) reportFile(file runner.FileOutcome) int {
	path := displayPath(file.Path, r.opts.WorkingDir)

	if file.Error != nil {
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(path),
			r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
		)
		return 0
	}

	if file.Result == nil || file.Result.FileResult == nil || len(file.Result.Diagnostics) == 0 {
		return 0
	}

	diagnostics := file.Result.Diagnostics
	fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(diagnostics)))

	for i := range diagnostics {
		diag := &diagnostics[i]
		fmt.Fprint(r.bw, r.styles.FormatDiagnostic(diag, path, r.opts.RuleFormat))
		if r.opts.ShowContext {
			r.writeContext(file.Result.FileResult, diag)
		}
	}

	fmt.Fprintln(r.bw)
	return len(diagnostics)
}

func (r *TextReporter) writeContext(fr *lint.FileResult, diag *lint.Diagnostic) {
	if fr.Snapshot == nil {
		return
	}
	raw := fr.Snapshot.LineContent(diag.StartLine)
	if raw == nil {
		return
	}

	line, caret := sourceContext(string(raw), diag.StartColumn, r.width-contextMargin)
	fmt.Fprint(r.bw, r.styles.FormatSourceContext(line, caret))
}
