package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/gomdtable/pkg/config"
	"github.com/yaklabco/gomdtable/pkg/runner"
)

// FormatSummaryOneLine renders run totals on one line, for example
// "7 issues (1 error, 6 warnings) in 2 files, 6 fixable".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	fixed := ""
	if stats.DiagnosticsFixed > 0 {
		fixed = s.Success.Render(fmt.Sprintf("%d fixed in %d %s",
			stats.DiagnosticsFixed, stats.FilesModified, plural(stats.FilesModified, "file", "files")))
	}

	if stats.DiagnosticsTotal == 0 {
		msg := s.Success.Render("No issues found") +
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesProcessed, plural(stats.FilesProcessed, "file", "files")))
		if fixed != "" {
			msg += ", " + fixed
		}
		return msg + "\n"
	}

	var bySeverity []string
	for _, sev := range config.Severities() {
		n := stats.DiagnosticsBySeverity[sev]
		if n == 0 {
			continue
		}
		word := string(sev)
		if sev != config.SeverityInfo {
			word = plural(n, word, word+"s")
		}
		bySeverity = append(bySeverity, s.severityStyle(sev).Render(fmt.Sprintf("%d %s", n, word)))
	}

	head := fmt.Sprintf("%d %s", stats.DiagnosticsTotal, plural(stats.DiagnosticsTotal, "issue", "issues"))
	if len(bySeverity) > 0 {
		head += " (" + strings.Join(bySeverity, ", ") + ")"
	}

	parts := []string{
		head,
		fmt.Sprintf("in %d %s", stats.FilesWithIssues, plural(stats.FilesWithIssues, "file", "files")),
	}
	if stats.DiagnosticsFixable > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixable", stats.DiagnosticsFixable)))
	}
	if fixed != "" {
		parts = append(parts, fixed)
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d %s failed",
			stats.FilesErrored, plural(stats.FilesErrored, "file", "files"))))
	}

	// "in N files" joins the head without a comma.
	return parts[0] + " " + strings.Join(parts[1:], ", ") + "\n"
}

func (s *Styles) severityStyle(sev config.Severity) lipgloss.Style {
	switch sev {
	case config.SeverityError:
		return s.Error
	case config.SeverityWarning:
		return s.Warning
	default:
		return s.Info
	}
}
