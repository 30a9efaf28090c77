package reporter

import (
	"bufio"
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"slices"
	"unicode/utf8"

	"github.com/yaklabco/gomdtable/pkg/config"
	"github.com/yaklabco/gomdtable/pkg/fix"
	"github.com/yaklabco/gomdtable/pkg/lint"
	"github.com/yaklabco/gomdtable/pkg/mdast"
	"github.com/yaklabco/gomdtable/pkg/runner"
)

const (
	sarifVersion   = "2.1.0"
	sarifSchemaURI = "https://json.schemastore.org/sarif-2.1.0.json"
	sarifToolURI   = "https://github.com/yaklabco/gomdtable"

	// Columns are counted in code points, not bytes or UTF-16 units.
	sarifColumnKind = "unicodeCodePoints"
)

// SARIFLog is the root of a SARIF 2.1.0 document.
type SARIFLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

type SARIFRun struct {
	Tool       SARIFTool     `json:"tool"`
	ColumnKind string        `json:"columnKind"`
	Results    []SARIFResult `json:"results"`
}

type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule is a reportingDescriptor for one lint rule.
type SARIFRule struct {
	ID               string           `json:"id"`
	Name             string           `json:"name,omitempty"`
	ShortDescription *SARIFText       `json:"shortDescription,omitempty"`
	DefaultConfig    SARIFRuleConfig  `json:"defaultConfiguration"`
	Properties       *SARIFProperties `json:"properties,omitempty"`
}

type SARIFRuleConfig struct {
	Level string `json:"level"`
}

type SARIFProperties struct {
	Tags    []string `json:"tags,omitempty"`
	Fixable bool     `json:"fixable"`
}

type SARIFText struct {
	Text string `json:"text"`
}

type SARIFResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex int             `json:"ruleIndex"`
	Level     string          `json:"level"`
	Message   SARIFText       `json:"message"`
	Locations []SARIFLocation `json:"locations"`
	Fixes     []SARIFFix      `json:"fixes,omitempty"`
}

type SARIFLocation struct {
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           SARIFRegion           `json:"region"`
}

type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

// SARIFRegion is a 1-based line/column span. An empty span marks an
// insertion point.
type SARIFRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn,omitempty"`
	EndLine     int `json:"endLine,omitempty"`
	EndColumn   int `json:"endColumn,omitempty"`
}

type SARIFFix struct {
	Description     SARIFText             `json:"description"`
	ArtifactChanges []SARIFArtifactChange `json:"artifactChanges"`
}

type SARIFArtifactChange struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Replacements     []SARIFReplacement    `json:"replacements"`
}

type SARIFReplacement struct {
	DeletedRegion   SARIFRegion `json:"deletedRegion"`
	InsertedContent *SARIFText  `json:"insertedContent,omitempty"`
}

// SARIFReporter writes one SARIF log per run, for code scanning uploads.
type SARIFReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewSARIFReporter creates a SARIFReporter.
func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{opts: opts, bw: bufio.NewWriterSize(opts.Writer, bufWriterSize)}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	out := r.buildLog(result)

	enc := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(out); err != nil {
		return 0, fmt.Errorf("encode SARIF: %w", err)
	}
	return len(out.Runs[0].Results), nil
}

func (r *SARIFReporter) buildLog(result *runner.Result) *SARIFLog {
	run := SARIFRun{
		Tool: SARIFTool{Driver: SARIFDriver{
			Name:           "gomdtable",
			Version:        r.opts.ToolVersion,
			InformationURI: sarifToolURI,
			Rules:          []SARIFRule{},
		}},
		ColumnKind: sarifColumnKind,
		Results:    []SARIFResult{},
	}

	rules := newSARIFRules(r.opts.Registry)

	if result != nil {
		for _, file := range result.Files {
			pr := file.Result
			if pr == nil || pr.FileResult == nil {
				continue
			}
			uri := artifactURI(displayPath(file.Path, r.opts.WorkingDir))
			for i := range pr.Diagnostics {
				d := &pr.Diagnostics[i]
				res := sarifResult(d, uri, pr.Snapshot)
				res.RuleIndex = rules.index(d)
				run.Results = append(run.Results, res)
			}
		}
	}

	run.Tool.Driver.Rules = rules.list

	return &SARIFLog{Schema: sarifSchemaURI, Version: sarifVersion, Runs: []SARIFRun{run}}
}

// sarifRules collects the rule descriptors referenced by results.
// Registered rules are listed up front in ID order.
type sarifRules struct {
	list []SARIFRule
	pos  map[string]int
}

func newSARIFRules(registry *lint.Registry) *sarifRules {
	rs := &sarifRules{list: []SARIFRule{}, pos: make(map[string]int)}
	if registry == nil {
		return rs
	}
	for _, rule := range registry.Rules() {
		desc := SARIFRule{
			ID:            rule.ID(),
			Name:          rule.Name(),
			DefaultConfig: SARIFRuleConfig{Level: sarifLevel(rule.DefaultSeverity())},
			Properties:    &SARIFProperties{Tags: rule.Tags(), Fixable: rule.CanFix()},
		}
		if s := rule.Description(); s != "" {
			desc.ShortDescription = &SARIFText{Text: s}
		}
		rs.add(desc)
	}
	return rs
}

func (rs *sarifRules) add(desc SARIFRule) int {
	rs.pos[desc.ID] = len(rs.list)
	rs.list = append(rs.list, desc)
	return rs.pos[desc.ID]
}

// index returns the descriptor position for d's rule, adding one built
// from the diagnostic when the rule is unknown.
func (rs *sarifRules) index(d *lint.Diagnostic) int {
	if i, ok := rs.pos[d.RuleID]; ok {
		return i
	}
	return rs.add(SARIFRule{
		ID:            d.RuleID,
		Name:          d.RuleName,
		DefaultConfig: SARIFRuleConfig{Level: sarifLevel(d.Severity)},
	})
}

func sarifResult(d *lint.Diagnostic, uri string, snapshot *mdast.FileSnapshot) SARIFResult {
	region := SARIFRegion{StartLine: max(d.StartLine, 1)}
	region.StartColumn = codePointColumn(snapshot, d.StartLine, d.StartColumn)
	if d.EndLine > 0 {
		region.EndLine = d.EndLine
		region.EndColumn = codePointColumn(snapshot, d.EndLine, d.EndColumn)
	}

	res := SARIFResult{
		RuleID:  d.RuleID,
		Level:   sarifLevel(d.Severity),
		Message: SARIFText{Text: d.Message},
		Locations: []SARIFLocation{{PhysicalLocation: SARIFPhysicalLocation{
			ArtifactLocation: SARIFArtifactLocation{URI: uri},
			Region:           region,
		}}},
	}

	if !d.HasFix() || snapshot == nil {
		return res
	}

	edits := slices.Clone(d.FixEdits)
	slices.SortStableFunc(edits, func(a, b fix.TextEdit) int { return cmp.Compare(a.StartOffset, b.StartOffset) })

	change := SARIFArtifactChange{ArtifactLocation: SARIFArtifactLocation{URI: uri}}
	for _, e := range edits {
		change.Replacements = append(change.Replacements, SARIFReplacement{
			DeletedRegion:   offsetRegion(snapshot, e.StartOffset, e.EndOffset),
			InsertedContent: &SARIFText{Text: e.NewText},
		})
	}

	desc := d.Suggestion
	if desc == "" {
		desc = "Align the table"
	}
	res.Fixes = []SARIFFix{{Description: SARIFText{Text: desc}, ArtifactChanges: []SARIFArtifactChange{change}}}
	return res
}

// offsetRegion converts a byte range of the original content to a
// code-point region.
func offsetRegion(snapshot *mdast.FileSnapshot, start, end int) SARIFRegion {
	span := snapshot.Span(start, end)
	return SARIFRegion{
		StartLine:   span.StartLine,
		StartColumn: codePointColumn(snapshot, span.StartLine, span.StartColumn),
		EndLine:     span.EndLine,
		EndColumn:   codePointColumn(snapshot, span.EndLine, span.EndColumn),
	}
}

// codePointColumn maps a 1-based byte column to a 1-based code point
// column. Without a snapshot the byte column is returned unchanged.
func codePointColumn(snapshot *mdast.FileSnapshot, line, byteCol int) int {
	if byteCol < 1 || snapshot == nil {
		return byteCol
	}
	content := snapshot.LineContent(line)
	if content == nil {
		return byteCol
	}
	n := min(byteCol-1, len(content))
	return utf8.RuneCount(content[:n]) + 1 + max(byteCol-1-len(content), 0)
}

func artifactURI(path string) string {
	return (&url.URL{Path: path}).String()
}

func sarifLevel(severity config.Severity) string {
	switch severity {
	case config.SeverityError:
		return "error"
	case config.SeverityInfo:
		return "note"
	default:
		return "warning"
	}
}
