package analysis_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdtable/pkg/analysis"
	"github.com/yaklabco/gomdtable/pkg/config"
	"github.com/yaklabco/gomdtable/pkg/fix"
	"github.com/yaklabco/gomdtable/pkg/lint"
	"github.com/yaklabco/gomdtable/pkg/runner"
)

func outcome(path string, diags ...lint.Diagnostic) runner.FileOutcome {
	return runner.FileOutcome{
		Path: path,
		Result: &lint.PipelineResult{
			Path:       path,
			FileResult: &lint.FileResult{Diagnostics: diags},
		},
	}
}

func aligned(severity config.Severity) lint.Diagnostic {
	return lint.Diagnostic{
		RuleID:   "MD060",
		RuleName: "table-column-style",
		Severity: severity,
		FixEdits: []fix.TextEdit{{StartOffset: 0, EndOffset: 1, NewText: "x"}},
	}
}

func columnCount() lint.Diagnostic {
	return lint.Diagnostic{RuleID: "MD056", RuleName: "table-column-count", Severity: config.SeverityError}
}

func TestAnalyze_Nil(t *testing.T) {
	t.Parallel()

	report := analysis.Analyze(nil, nil)
	require.NotNil(t, report)
	assert.Empty(t, report.ByRule)
	assert.Empty(t, report.ByFile)
	assert.Zero(t, report.Totals)
}

func TestAnalyze_Totals(t *testing.T) {
	t.Parallel()

	result := &runner.Result{Files: []runner.FileOutcome{
		outcome("a.md", aligned(config.SeverityWarning), aligned(""), columnCount()),
		outcome("b.md", aligned(config.SeverityInfo)),
		outcome("clean.md"),
		{Path: "broken.md"},
	}}

	report := analysis.Analyze(result, nil)

	assert.Equal(t, analysis.Counts{Issues: 4, Errors: 1, Warnings: 2, Infos: 1, Fixable: 3}, report.Totals)
	require.Len(t, report.ByFile, 2, "files without issues are left out")
}

func TestAnalyze_Ordering(t *testing.T) {
	t.Parallel()

	result := &runner.Result{Files: []runner.FileOutcome{
		outcome("z.md", columnCount()),
		outcome("a.md", columnCount()),
		outcome("m.md", aligned(config.SeverityWarning), aligned(config.SeverityWarning), columnCount()),
	}}

	report := analysis.Analyze(result, nil)

	require.Len(t, report.ByRule, 2)
	assert.Equal(t, "MD056", report.ByRule[0].RuleID)
	assert.Equal(t, 3, report.ByRule[0].Issues)
	assert.Equal(t, []string{"a.md", "m.md", "z.md"}, report.ByRule[0].Files)
	assert.Equal(t, "MD060", report.ByRule[1].RuleID)
	assert.Equal(t, 2, report.ByRule[1].Fixable)

	require.Len(t, report.ByFile, 3)
	assert.Equal(t, "m.md", report.ByFile[0].Path)
	assert.Equal(t, []string{"MD056", "MD060"}, report.ByFile[0].Rules)
	assert.Equal(t, "a.md", report.ByFile[1].Path, "ties sort by path")
	assert.Equal(t, "z.md", report.ByFile[2].Path)
}

func TestAnalyze_DisplayPath(t *testing.T) {
	t.Parallel()

	root := filepath.Join("work", "docs")
	result := &runner.Result{Files: []runner.FileOutcome{
		outcome(filepath.Join(root, "guide.md"), columnCount()),
	}}

	report := analysis.Analyze(result, func(path string) string { return filepath.Base(path) })

	require.Len(t, report.ByFile, 1)
	assert.Equal(t, "guide.md", report.ByFile[0].Path)
	assert.Equal(t, []string{"guide.md"}, report.ByRule[0].Files)
}
