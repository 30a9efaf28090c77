// Package lint runs table rules over parsed Markdown and collects their
// diagnostics and fix edits.
package lint

import "github.com/yaklabco/gomdtable/pkg/config"

// Rule is a single check. Apply returns one diagnostic per violation and
// an error only when the rule itself fails.
type Rule interface {
	ID() string
	Name() string
	Description() string
	Tags() []string
	DefaultEnabled() bool
	DefaultSeverity() config.Severity

	// CanFix reports whether diagnostics may carry FixEdits.
	CanFix() bool

	Apply(rc *RuleContext) ([]Diagnostic, error)
}

// Meta is the static half of a Rule. Embed it and implement Apply.
type Meta struct {
	RuleID   string
	RuleName string
	Summary  string
	Labels   []string
	Fixable  bool

	// Severity defaults to warning when empty.
	Severity config.Severity

	// Off keeps the rule disabled until configuration enables it.
	Off bool
}

func (m Meta) ID() string           { return m.RuleID }
func (m Meta) Name() string         { return m.RuleName }
func (m Meta) Description() string  { return m.Summary }
func (m Meta) Tags() []string       { return m.Labels }
func (m Meta) DefaultEnabled() bool { return !m.Off }
func (m Meta) CanFix() bool         { return m.Fixable }

func (m Meta) DefaultSeverity() config.Severity {
	if m.Severity == "" {
		return config.SeverityWarning
	}
	return m.Severity
}
