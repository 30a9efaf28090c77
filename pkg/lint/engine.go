package lint

import (
	"context"
	"fmt"

	"github.com/yaklabco/gomdtable/internal/logging"
	"github.com/yaklabco/gomdtable/pkg/config"
	"github.com/yaklabco/gomdtable/pkg/fix"
	"github.com/yaklabco/gomdtable/pkg/mdast"
)

// FileResult is the outcome of one lint pass over a file.
type FileResult struct {
	Snapshot    *mdast.FileSnapshot
	Diagnostics []Diagnostic

	// Edits are the sorted, non-overlapping fix edits of rules with
	// auto-fix enabled. Skipped holds edits that overlapped an earlier one;
	// the next fix pass sees them again against the rewritten content.
	Edits   []fix.TextEdit
	Skipped []fix.TextEdit

	// EditErr is set when a rule proposed an out-of-range edit. No edits
	// are applied in that case.
	EditErr error

	// RuleErrors maps rule IDs to internal rule failures.
	RuleErrors map[string]error
}

// HasIssues reports whether any diagnostics were found.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Diagnostics) > 0
}

// HasFixes reports whether there are edits to apply.
func (fr *FileResult) HasFixes() bool {
	return len(fr.Edits) > 0
}

// Conflicted reports whether any proposed edit was held back.
func (fr *FileResult) Conflicted() bool {
	return fr.EditErr != nil || len(fr.Skipped) > 0
}

// FixableCount returns the number of diagnostics that carry a fix.
func (fr *FileResult) FixableCount() int {
	n := 0
	for i := range fr.Diagnostics {
		if fr.Diagnostics[i].HasFix() {
			n++
		}
	}
	return n
}

// Engine parses files and runs the enabled rules over them.
type Engine struct {
	Parser   Parser
	Registry *Registry
}

// NewEngine creates an Engine.
func NewEngine(parser Parser, registry *Registry) *Engine {
	return &Engine{Parser: parser, Registry: registry}
}

// LintFile parses content and applies every enabled rule. A failing rule
// is recorded in RuleErrors and does not stop the others.
func (e *Engine) LintFile(ctx context.Context, path string, content []byte, cfg *config.Config) (*FileResult, error) {
	snapshot, err := e.Parser.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	result := &FileResult{
		Snapshot:   snapshot,
		RuleErrors: make(map[string]error),
	}

	var edits []fix.TextEdit
	for _, rr := range ResolveRules(e.Registry, cfg) {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("linting cancelled: %w", err)
		}

		diags, err := e.apply(ctx, snapshot, cfg, rr)
		if err != nil {
			result.RuleErrors[rr.Rule.ID()] = err
			continue
		}

		for i := range diags {
			if rr.AutoFix {
				edits = append(edits, diags[i].FixEdits...)
			}
		}
		result.Diagnostics = append(result.Diagnostics, diags...)
	}

	if len(edits) > 0 {
		result.Edits, result.Skipped, result.EditErr = fix.PrepareEditsFiltered(edits, len(content))
	}

	return result, nil
}

// apply runs one rule and stamps its diagnostics with the resolved
// severity, the file path and the rule name.
func (e *Engine) apply(ctx context.Context, snapshot *mdast.FileSnapshot, cfg *config.Config, rr ResolvedRule) ([]Diagnostic, error) {
	rc := NewRuleContext(ctx, snapshot, cfg, rr.Config)

	diags, err := rr.Rule.Apply(rc)
	if err != nil {
		rc.Logger.Debug("rule failed",
			logging.FieldPath, snapshot.Path,
			logging.FieldRule, rr.Rule.ID(),
			logging.FieldError, err,
		)
		return nil, err
	}

	for i := range diags {
		d := &diags[i]
		d.Severity = rr.Severity
		if d.FilePath == "" {
			d.FilePath = snapshot.Path
		}
		if d.RuleName == "" {
			d.RuleName = rr.Rule.Name()
		}
	}
	return diags, nil
}
