package rules

import (
	"fmt"

	"github.com/yaklabco/gomdtable/internal/logging"
	"github.com/yaklabco/gomdtable/pkg/config"
	"github.com/yaklabco/gomdtable/pkg/fix"
	"github.com/yaklabco/gomdtable/pkg/lint"
	"github.com/yaklabco/gomdtable/pkg/mdast"
	"github.com/yaklabco/gomdtable/pkg/tablefmt"
)

// TableColumnStyleRule checks that GFM tables are laid out as aligned grids:
// every cell padded to its column width, delimiter cells filled with dashes
// and colons, and every row as wide as the widest one.
type TableColumnStyleRule struct {
	lint.Meta
}

// NewTableColumnStyleRule creates a new table column style rule.
func NewTableColumnStyleRule() *TableColumnStyleRule {
	return &TableColumnStyleRule{
		Meta: lint.Meta{
			RuleID:   "MD060",
			RuleName: "table-column-style",
			Summary:  "Table columns should be aligned",
			Labels:   []string{"table", "whitespace"},
			Fixable:  true,
		},
	}
}

// Apply reports one diagnostic per table patch. Each diagnostic carries a
// single edit, so applying every fix rewrites only the fragments that differ
// from the aligned layout.
func (r *TableColumnStyleRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.Root == nil || ctx.File == nil || !ctx.IsGFM() {
		return nil, nil
	}

	src := string(ctx.File.Content)

	var diags []lint.Diagnostic
	for _, table := range lint.Tables(ctx.Root) {
		if ctx.Cancelled() {
			return diags, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}

		if !table.Range.Known() {
			ctx.Logger.Debug("skipping table without source range",
				logging.FieldPath, ctx.File.Path,
				logging.FieldRule, r.ID(),
			)
			continue
		}

		for _, patch := range tablefmt.Format(tableModel(table), src) {
			diags = append(diags, r.diagnostic(ctx.File, patch))
		}
	}

	return diags, nil
}

func (r *TableColumnStyleRule) diagnostic(file *mdast.FileSnapshot, patch tablefmt.Patch) lint.Diagnostic {
	report := patch.Report
	if !report.Known() {
		report = patch.Edit
	}

	pos := file.Span(report.Start, report.End)
	return lint.NewDiagnosticAt(r.ID(), file.Path, pos, "Table is not aligned: "+patchDetail(patch)).
		WithSeverity(config.SeverityWarning).
		WithSuggestion("Pad each cell to its column width").
		WithEdit(fix.Replace(patch.Edit.Start, patch.Edit.End, patch.Text))
}

// patchDetail names the part of the table a patch rewrites. Rows are
// counted from the first body row; the header is named separately.
func patchDetail(p tablefmt.Patch) string {
	row := fmt.Sprintf("row %d", p.Row)
	if p.Row == 0 {
		row = "header row"
	}

	switch p.Kind {
	case tablefmt.PatchCell:
		return fmt.Sprintf("%s, column %d", row, p.Column+1)
	case tablefmt.PatchInsert:
		return row + " is missing cells"
	case tablefmt.PatchRow:
		return row + " is rewritten"
	case tablefmt.PatchDelimiterCell:
		return fmt.Sprintf("delimiter row, column %d", p.Column+1)
	case tablefmt.PatchDelimiterRow:
		return "delimiter row has the wrong number of columns"
	case tablefmt.PatchTable:
		return "table is rewritten"
	default:
		return p.Kind.String()
	}
}

// TableColumnCountRule checks that body rows have as many cells as the
// header row.
type TableColumnCountRule struct {
	lint.Meta
}

// NewTableColumnCountRule creates a new table column count rule.
func NewTableColumnCountRule() *TableColumnCountRule {
	return &TableColumnCountRule{
		Meta: lint.Meta{
			RuleID:   "MD056",
			RuleName: "table-column-count",
			Summary:  "Table rows should have the same number of cells as the header",
			Labels:   []string{"table"},
		},
	}
}

// Apply checks table column consistency. Skipped if not GFM flavor.
//
// Options:
//   - allow-extra-cells (bool): only report rows with fewer cells than the header.
func (r *TableColumnCountRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.Root == nil || ctx.File == nil || !ctx.IsGFM() {
		return nil, nil
	}

	allowExtra := ctx.OptionBool("allow-extra-cells", false)

	var diags []lint.Diagnostic
	for _, table := range lint.Tables(ctx.Root) {
		if ctx.Cancelled() {
			return diags, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}

		header := lint.HeaderRow(table)
		if header == nil {
			continue
		}
		want := len(lint.RowCells(header))

		for i, row := range lint.BodyRows(table) {
			got := len(lint.RowCells(row))
			if got == want || (allowExtra && got > want) {
				continue
			}

			pos := row.SourcePosition()
			if !pos.IsValid() {
				continue
			}

			diags = append(diags, lint.NewDiagnosticAt(r.ID(), ctx.File.Path, pos,
				fmt.Sprintf("Table row %d has %d cells, header has %d", i+1, got, want)).
				WithSeverity(config.SeverityWarning).
				WithSuggestion("Ensure all rows have the same number of cells"))
		}
	}

	return diags, nil
}

// tableModel converts a mapped table node into the layout engine's model.
// Unknown node ranges stay unknown.
func tableModel(table *mdast.Node) *tablefmt.Table {
	model := &tablefmt.Table{Range: rangeOf(table.Range)}

	for _, a := range lint.TableAlignments(table) {
		model.Alignments = append(model.Alignments, alignmentOf(a))
	}

	for _, row := range lint.TableRows(table) {
		r := tablefmt.Row{Range: rangeOf(row.Range)}
		for _, cell := range lint.RowCells(row) {
			r.Cells = append(r.Cells, tablefmt.Cell{
				Range:   rangeOf(cell.Range),
				Content: rangeOf(lint.CellContentRange(cell)),
			})
		}
		model.Rows = append(model.Rows, r)
	}

	return model
}

func rangeOf(r mdast.SourceRange) tablefmt.Range {
	if !r.Known() {
		return tablefmt.NoRange
	}
	return tablefmt.Range{Start: r.StartOffset, End: r.EndOffset}
}

func alignmentOf(a mdast.Alignment) tablefmt.Alignment {
	switch a {
	case mdast.AlignLeft:
		return tablefmt.AlignLeft
	case mdast.AlignCenter:
		return tablefmt.AlignCenter
	case mdast.AlignRight:
		return tablefmt.AlignRight
	case mdast.AlignNone:
		return tablefmt.AlignNone
	default:
		return tablefmt.AlignNone
	}
}
