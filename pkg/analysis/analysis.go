// Package analysis aggregates a run's diagnostics into per-rule and
// per-file counts for machine-readable reports.
package analysis

import (
	"cmp"
	"slices"

	"github.com/yaklabco/gomdtable/pkg/config"
	"github.com/yaklabco/gomdtable/pkg/lint"
	"github.com/yaklabco/gomdtable/pkg/runner"
)

// Counts holds issue counts split by severity.
type Counts struct {
	Issues   int `json:"issues"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Infos    int `json:"infos"`
	Fixable  int `json:"fixable"`
}

func (c *Counts) add(diag *lint.Diagnostic) {
	c.Issues++
	switch severityOf(diag) {
	case config.SeverityError:
		c.Errors++
	case config.SeverityInfo:
		c.Infos++
	default:
		c.Warnings++
	}
	if diag.HasFix() {
		c.Fixable++
	}
}

// RuleTally is the aggregate for one rule.
type RuleTally struct {
	RuleID   string   `json:"ruleId"`
	RuleName string   `json:"ruleName"`
	Files    []string `json:"files"`
	Counts
}

// FileTally is the aggregate for one file with at least one issue.
type FileTally struct {
	Path  string   `json:"path"`
	Rules []string `json:"rules"`
	Counts
}

// Report is the aggregate view of a run.
type Report struct {
	ByRule []RuleTally `json:"byRule"`
	ByFile []FileTally `json:"byFile"`
	Totals Counts      `json:"totals"`
}

// PathFunc maps a file path to the form shown in reports.
type PathFunc func(string) string

// Analyze tallies result. Rules and files are ordered by issue count,
// highest first, with ties broken by name.
func Analyze(result *runner.Result, display PathFunc) *Report {
	report := &Report{ByRule: []RuleTally{}, ByFile: []FileTally{}}
	if result == nil {
		return report
	}
	if display == nil {
		display = func(p string) string { return p }
	}

	rules := make(map[string]*RuleTally)
	ruleFiles := make(map[string]map[string]struct{})

	for _, file := range result.Files {
		if file.Result == nil || file.Result.FileResult == nil || len(file.Result.Diagnostics) == 0 {
			continue
		}

		path := display(file.Path)
		ft := FileTally{Path: path}
		seen := make(map[string]struct{})

		for i := range file.Result.Diagnostics {
			diag := &file.Result.Diagnostics[i]
			report.Totals.add(diag)
			ft.add(diag)

			rt, ok := rules[diag.RuleID]
			if !ok {
				rt = &RuleTally{RuleID: diag.RuleID, RuleName: diag.RuleName}
				rules[diag.RuleID] = rt
				ruleFiles[diag.RuleID] = make(map[string]struct{})
			}
			rt.add(diag)
			ruleFiles[diag.RuleID][path] = struct{}{}

			if _, ok := seen[diag.RuleID]; !ok {
				seen[diag.RuleID] = struct{}{}
				ft.Rules = append(ft.Rules, diag.RuleID)
			}
		}

		slices.Sort(ft.Rules)
		report.ByFile = append(report.ByFile, ft)
	}

	for id, rt := range rules {
		for path := range ruleFiles[id] {
			rt.Files = append(rt.Files, path)
		}
		slices.Sort(rt.Files)
		report.ByRule = append(report.ByRule, *rt)
	}

	slices.SortFunc(report.ByRule, func(a, b RuleTally) int {
		return byCount(a.Issues, b.Issues, a.RuleID, b.RuleID)
	})
	slices.SortFunc(report.ByFile, func(a, b FileTally) int {
		return byCount(a.Issues, b.Issues, a.Path, b.Path)
	})

	return report
}

func byCount(countA, countB int, nameA, nameB string) int {
	if c := cmp.Compare(countB, countA); c != 0 {
		return c
	}
	return cmp.Compare(nameA, nameB)
}

func severityOf(diag *lint.Diagnostic) config.Severity {
	if diag.Severity == "" {
		return config.SeverityWarning
	}
	return diag.Severity
}
