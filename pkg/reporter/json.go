package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/gomdtable/pkg/analysis"
	"github.com/yaklabco/gomdtable/pkg/config"
	"github.com/yaklabco/gomdtable/pkg/lint"
	"github.com/yaklabco/gomdtable/pkg/runner"
)

// SchemaVersion identifies the JSON output layout.
const SchemaVersion = "1"

// JSONOutput is the document written by the json format.
type JSONOutput struct {
	Version string               `json:"version"`
	Files   []JSONFileResult     `json:"files"`
	Summary JSONSummary          `json:"summary"`
	ByRule  []analysis.RuleTally `json:"byRule"`
}

// JSONFileResult is one processed file. Diagnostics is never null.
type JSONFileResult struct {
	Path        string           `json:"path"`
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
	Modified    bool             `json:"modified,omitempty"`
	Skipped     string           `json:"skipped,omitempty"`
	Error       string           `json:"error,omitempty"`
}

type JSONDiagnostic struct {
	RuleID      string    `json:"ruleId"`
	RuleName    string    `json:"ruleName"`
	Severity    string    `json:"severity"`
	Message     string    `json:"message"`
	StartLine   int       `json:"startLine"`
	StartColumn int       `json:"startColumn"`
	EndLine     int       `json:"endLine"`
	EndColumn   int       `json:"endColumn"`
	Suggestion  string    `json:"suggestion,omitempty"`
	Fixable     bool      `json:"fixable"`
	Fixes       []JSONFix `json:"fixes,omitempty"`
}

// JSONFix is a byte-range replacement in the original file.
type JSONFix struct {
	StartOffset int    `json:"startOffset"`
	EndOffset   int    `json:"endOffset"`
	NewText     string `json:"newText"`
}

type JSONSummary struct {
	FilesChecked    int            `json:"filesChecked"`
	FilesWithIssues int            `json:"filesWithIssues"`
	FilesModified   int            `json:"filesModified"`
	FilesErrored    int            `json:"filesErrored"`
	TotalIssues     int            `json:"totalIssues"`
	FixableIssues   int            `json:"fixableIssues"`
	BySeverity      map[string]int `json:"bySeverity"`
}

// JSONReporter writes a single JSON document per run.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a JSONReporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{opts: opts, bw: bufio.NewWriterSize(opts.Writer, bufWriterSize)}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	enc := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}
	return output.Summary.TotalIssues, nil
}

func (r *JSONReporter) display(path string) string {
	return displayPath(path, r.opts.WorkingDir)
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	tally := analysis.Analyze(result, r.display)

	output := &JSONOutput{
		Version: SchemaVersion,
		Files:   []JSONFileResult{},
		ByRule:  tally.ByRule,
		Summary: JSONSummary{
			TotalIssues:   tally.Totals.Issues,
			FixableIssues: tally.Totals.Fixable,
			BySeverity:    bySeverity(tally.Totals),
		},
	}
	if result == nil {
		return output
	}

	for _, file := range result.Files {
		jf := r.fileResult(file)
		output.Files = append(output.Files, jf)

		output.Summary.FilesChecked++
		if jf.Error != "" {
			output.Summary.FilesErrored++
		}
		if jf.Modified {
			output.Summary.FilesModified++
		}
		if len(jf.Diagnostics) > 0 {
			output.Summary.FilesWithIssues++
		}
	}
	return output
}

func (r *JSONReporter) fileResult(file runner.FileOutcome) JSONFileResult {
	jf := JSONFileResult{Path: r.display(file.Path), Diagnostics: []JSONDiagnostic{}}
	if file.Error != nil {
		jf.Error = file.Error.Error()
	}

	pr := file.Result
	if pr == nil {
		return jf
	}
	jf.Modified = pr.Written
	if pr.Skipped {
		jf.Skipped = pr.SkipReason
	}
	if pr.FileResult != nil {
		for i := range pr.Diagnostics {
			jf.Diagnostics = append(jf.Diagnostics, jsonDiagnostic(&pr.Diagnostics[i]))
		}
	}
	return jf
}

func jsonDiagnostic(d *lint.Diagnostic) JSONDiagnostic {
	jd := JSONDiagnostic{
		RuleID:      d.RuleID,
		RuleName:    d.RuleName,
		Severity:    string(d.Severity),
		Message:     d.Message,
		StartLine:   d.StartLine,
		StartColumn: d.StartColumn,
		EndLine:     d.EndLine,
		EndColumn:   d.EndColumn,
		Suggestion:  d.Suggestion,
		Fixable:     d.HasFix(),
	}
	for _, e := range d.FixEdits {
		jd.Fixes = append(jd.Fixes, JSONFix{StartOffset: e.StartOffset, EndOffset: e.EndOffset, NewText: e.NewText})
	}
	return jd
}

// bySeverity lists only severities that occurred.
func bySeverity(c analysis.Counts) map[string]int {
	out := make(map[string]int, 3)
	for sev, n := range map[config.Severity]int{
		config.SeverityError:   c.Errors,
		config.SeverityWarning: c.Warnings,
		config.SeverityInfo:    c.Infos,
	} {
		if n > 0 {
			out[string(sev)] = n
		}
	}
	return out
}
