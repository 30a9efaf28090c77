package lint

import (
	"github.com/yaklabco/gomdtable/pkg/config"
	"github.com/yaklabco/gomdtable/pkg/fix"
	"github.com/yaklabco/gomdtable/pkg/mdast"
)

// Diagnostic is one reported problem. Lines and columns are 1-based.
type Diagnostic struct {
	RuleID   string
	RuleName string
	Message  string
	Severity config.Severity
	FilePath string

	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int

	Suggestion string
	FixEdits   []fix.TextEdit
}

// NewDiagnosticAt returns a diagnostic for ruleID spanning pos. The With
// methods return modified copies, so calls can be chained.
func NewDiagnosticAt(ruleID, filePath string, pos mdast.SourcePosition, message string) Diagnostic {
	return Diagnostic{
		RuleID:      ruleID,
		Message:     message,
		FilePath:    filePath,
		StartLine:   pos.StartLine,
		StartColumn: pos.StartColumn,
		EndLine:     pos.EndLine,
		EndColumn:   pos.EndColumn,
	}
}

func (d Diagnostic) WithSeverity(s config.Severity) Diagnostic {
	d.Severity = s
	return d
}

func (d Diagnostic) WithSuggestion(s string) Diagnostic {
	d.Suggestion = s
	return d
}

// WithEdit appends a fix edit. The receiver's edit slice is never shared
// with the result.
func (d Diagnostic) WithEdit(edit fix.TextEdit) Diagnostic {
	edits := make([]fix.TextEdit, len(d.FixEdits), len(d.FixEdits)+1)
	copy(edits, d.FixEdits)
	d.FixEdits = append(edits, edit)
	return d
}

// HasFix reports whether the diagnostic carries edits.
func (d Diagnostic) HasFix() bool {
	return len(d.FixEdits) > 0
}

func (d Diagnostic) SourcePosition() mdast.SourcePosition {
	return mdast.SourcePosition{
		StartLine:   d.StartLine,
		StartColumn: d.StartColumn,
		EndLine:     d.EndLine,
		EndColumn:   d.EndColumn,
	}
}
