package tablefmt_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdtable/pkg/fix"
	"github.com/yaklabco/gomdtable/pkg/tablefmt"
)

// scanTable builds a table view from src, which must contain exactly one
// table starting at the first line: header, delimiter, then body rows.
// prefix is the text repeated before every line.
func scanTable(t *testing.T, src, prefix string) *tablefmt.Table {
	t.Helper()

	table := &tablefmt.Table{}
	lastEnd := 0
	lineStart := 0
	for i := 0; lineStart <= len(src); i++ {
		lineEnd := len(src)
		if nl := strings.IndexByte(src[lineStart:], '\n'); nl >= 0 {
			lineEnd = lineStart + nl
		}

		rng := tablefmt.RowRange(src, lineStart, lineEnd, prefix)
		cells := tablefmt.SplitRow(src, rng)
		if rng.Len() > 0 {
			lastEnd = rng.End
		}
		if i == 1 {
			for _, cell := range cells {
				table.Alignments = append(table.Alignments, alignmentOf(src, cell))
			}
		} else if rng.Len() > 0 {
			table.Rows = append(table.Rows, tablefmt.Row{Range: rng, Cells: cells})
		}

		if lineEnd == len(src) {
			break
		}
		lineStart = lineEnd + 1
	}

	if len(table.Rows) == 0 {
		t.Fatalf("no rows in %q", src)
	}
	table.Range = tablefmt.Range{
		Start: table.Rows[0].Range.Start,
		End:   lastEnd,
	}
	return table
}

func alignmentOf(src string, cell tablefmt.Cell) tablefmt.Alignment {
	marker := tablefmt.CellText(cell, src)
	left := strings.HasPrefix(marker, ":")
	right := strings.HasSuffix(marker, ":") && len(marker) > 1
	switch {
	case left && right:
		return tablefmt.AlignCenter
	case left:
		return tablefmt.AlignLeft
	case right:
		return tablefmt.AlignRight
	default:
		return tablefmt.AlignNone
	}
}

// format runs the engine on src and returns the patched text. Patches go
// through the same validation and application as rule fixes.
func format(t *testing.T, src, prefix string) (string, []tablefmt.Patch) {
	t.Helper()

	patches := tablefmt.Format(scanTable(t, src, prefix), src)
	edits := make([]fix.TextEdit, 0, len(patches))
	for _, p := range patches {
		edits = append(edits, fix.Replace(p.Edit.Start, p.Edit.End, p.Text))
	}
	edits, err := fix.PrepareEdits(edits, len(src))
	require.NoError(t, err)
	return string(fix.ApplyEdits([]byte(src), edits)), patches
}
