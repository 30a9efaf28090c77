package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gomdtable/pkg/config"
	"github.com/yaklabco/gomdtable/pkg/lint"
)

// contextIndent aligns source context under the diagnostic message.
const contextIndent = "        "

// FormatDiagnostic renders the one-line form
// "  path:line:col  severity  message  (rule)" plus a suggestion line when
// the diagnostic has one.
func (s *Styles) FormatDiagnostic(diag *lint.Diagnostic, path string, ruleFormat config.RuleFormat) string {
	var b strings.Builder

	location := s.FilePath.Render(path) + s.Location.Render(fmt.Sprintf(":%d:%d", diag.StartLine, diag.StartColumn))
	rule := s.RuleID.Render("(" + ruleFormat.Render(diag.RuleID, diag.RuleName) + ")")

	fmt.Fprintf(&b, "  %s  %s  %s  %s\n", location, s.FormatSeverity(diag.Severity), s.Message.Render(diag.Message), rule)

	if diag.Suggestion != "" {
		b.WriteString(contextIndent + s.Dim.Render("Suggestion:") + " " + s.Suggestion.Render(diag.Suggestion) + "\n")
	}

	return b.String()
}

// FormatSeverity renders a severity name in its color.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// FormatSourceContext renders a source line with a caret under caretCol,
// a 1-based terminal column. A caretCol below 1 omits the caret.
func (s *Styles) FormatSourceContext(line string, caretCol int) string {
	out := contextIndent + s.SourceLine.Render(line) + "\n"
	if caretCol > 0 {
		out += contextIndent + strings.Repeat(" ", caretCol-1) + s.Caret.Render("^") + "\n"
	}
	return out
}

// FormatFileHeader renders a file name with its issue count.
func (s *Styles) FormatFileHeader(path string, issues int) string {
	header := s.FilePath.Render(path)
	if issues > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", issues, plural(issues, "issue", "issues")))
	}
	return header
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
