package tablefmt

import (
	"cmp"
	"slices"
	"strings"
)

// PatchKind tells which unit of the table a patch rewrites.
type PatchKind uint8

const (
	// PatchCell rewrites the fragment of one body or header cell.
	PatchCell PatchKind = iota
	// PatchInsert appends the cells missing at the end of a short row.
	PatchInsert
	// PatchRow replaces a row whose cells could not be resolved.
	PatchRow
	// PatchDelimiterCell rewrites one column of the delimiter row.
	PatchDelimiterCell
	// PatchDelimiterRow replaces a delimiter row with the wrong column count.
	PatchDelimiterRow
	// PatchTable replaces the whole table.
	PatchTable
)

// String returns a short human-readable name for the kind.
func (k PatchKind) String() string {
	switch k {
	case PatchCell:
		return "cell"
	case PatchInsert:
		return "missing cells"
	case PatchRow:
		return "row"
	case PatchDelimiterCell:
		return "delimiter cell"
	case PatchDelimiterRow:
		return "delimiter row"
	case PatchTable:
		return "table"
	default:
		return "unknown"
	}
}

// Patch replaces src[Edit.Start:Edit.End] with Text. Report is the range a
// diagnostic should point at. Row is the table row index (0 is the header,
// -1 the delimiter row or the whole table) and Column the column index, or
// -1 for row and table patches.
type Patch struct {
	Edit   Range
	Text   string
	Report Range
	Kind   PatchKind
	Row    int
	Column int
}

// Patches returns the edits that bring table t to the canonical form
// described by layout l, sorted by source offset. An already canonical
// table yields no patches, and so does a table whose own range is unknown.
func Patches(t *Table, l *Layout, src string) []Patch {
	if t == nil || l == nil || !t.Range.within(len(src)) || len(t.Rows) == 0 {
		return nil
	}

	p := &patcher{table: t, layout: l, src: src}

	resolved := p.row(0)
	if p.delimiter() {
		resolved = true
	}
	for r := 1; r < len(t.Rows); r++ {
		if p.row(r) {
			resolved = true
		}
	}

	if !resolved {
		p.wholeTable()
	}

	slices.SortStableFunc(p.patches, func(a, b Patch) int {
		return cmp.Compare(a.Edit.Start, b.Edit.Start)
	})
	return p.patches
}

// Format builds the layout of t and returns its patches.
func Format(t *Table, src string) []Patch {
	return Patches(t, BuildLayout(t, src), src)
}

type patcher struct {
	table   *Table
	layout  *Layout
	src     string
	patches []Patch
}

// row patches one row and reports whether its position was resolvable.
func (p *patcher) row(r int) bool {
	row := p.table.Rows[r]
	l := p.layout
	n := l.ColumnCount

	if len(row.Cells) == 0 || !p.cellsResolvable(row) {
		return p.replaceRow(r)
	}

	k := len(row.Cells)
	last := k - 1
	for c := range last {
		p.cell(r, c, row.Cells[c].Range, false)
	}

	if k == n {
		p.cell(r, last, row.Cells[last].Range, true)
		return true
	}

	lastRange := row.Cells[last].Range
	var tail strings.Builder
	insertAt := lastRange.End
	if p.closedByPipe(lastRange) {
		p.cell(r, last, Range{Start: lastRange.Start, End: lastRange.End - 1}, false)
		for c := k; c < n; c++ {
			tail.WriteString(" " + Align("", l.Widths[c], l.Alignments[c]) + " |")
		}
	} else {
		p.cell(r, last, lastRange, false)
		for c := k; c < n; c++ {
			tail.WriteString(CellFragment("", l.Widths[c], l.Alignments[c], c == n-1))
		}
	}

	p.add(Patch{
		Edit:   Range{Start: insertAt, End: insertAt},
		Text:   tail.String(),
		Report: lastRange,
		Kind:   PatchInsert,
		Row:    r,
		Column: k,
	})
	return true
}

// cell compares one cell fragment with its canonical rendering.
func (p *patcher) cell(r, c int, rng Range, last bool) {
	l := p.layout
	want := CellFragment(l.Values[r][c], l.Widths[c], l.Alignments[c], last)
	p.compare(rng, want, PatchCell, r, c)
}

func (p *patcher) compare(rng Range, want string, kind PatchKind, r, c int) {
	got := p.src[rng.Start:rng.End]
	if got == want {
		return
	}
	report := rng
	if strings.HasPrefix(got, "|") && strings.HasPrefix(want, "|") && rng.Len() > 1 {
		report.Start++
	}
	p.add(Patch{Edit: rng, Text: want, Report: report, Kind: kind, Row: r, Column: c})
}

func (p *patcher) replaceRow(r int) bool {
	row := p.table.Rows[r]
	if !row.Range.within(len(p.src)) {
		return false
	}
	l := p.layout
	want := RenderRow(l.Values[r], l.Widths, l.Alignments)
	if p.src[row.Range.Start:row.Range.End] != want {
		p.add(Patch{Edit: row.Range, Text: want, Report: row.Range, Kind: PatchRow, Row: r, Column: -1})
	}
	return true
}

// delimiter locates the line after the header row and patches it. It
// reports whether the line could be located.
func (p *patcher) delimiter() bool {
	header := p.table.Rows[0].Range
	if !header.within(len(p.src)) {
		return false
	}
	nl := strings.IndexByte(p.src[header.End:], '\n')
	if nl < 0 {
		return false
	}
	lineStart := header.End + nl + 1
	if lineStart >= p.table.Range.End {
		return false
	}
	_, lineEnd := lineBounds(p.src, lineStart)
	lineEnd = min(lineEnd, p.table.Range.End)

	seg := RowRange(p.src, lineStart, lineEnd, LinePrefix(p.src, header.Start))
	if seg.Len() == 0 {
		return false
	}

	l := p.layout
	n := l.ColumnCount
	cells := SplitRow(p.src, seg)
	if len(cells) != n {
		want := RenderDelimiter(l.Widths, l.Alignments)
		if p.src[seg.Start:seg.End] != want {
			p.add(Patch{Edit: seg, Text: want, Report: seg, Kind: PatchDelimiterRow, Row: -1, Column: -1})
		}
		return true
	}

	for c, cell := range cells {
		want := DelimiterFragment(l.Widths[c], l.Alignments[c], c == n-1)
		p.compare(cell.Range, want, PatchDelimiterCell, -1, c)
	}
	return true
}

func (p *patcher) wholeTable() {
	rng := p.table.Range
	got := p.src[rng.Start:rng.End]
	want := p.layout.Render(LinePrefix(p.src, rng.Start), LineEnding(got))
	if got != want {
		p.add(Patch{Edit: rng, Text: want, Report: rng, Kind: PatchTable, Row: -1, Column: -1})
	}
}

// cellsResolvable reports whether every cell range is known, inside the
// source, and in increasing non-overlapping order.
func (p *patcher) cellsResolvable(row Row) bool {
	prev := 0
	for _, cell := range row.Cells {
		if !cell.Range.within(len(p.src)) || cell.Range.Start < prev || cell.Range.Len() == 0 {
			return false
		}
		prev = cell.Range.End
	}
	return true
}

// closedByPipe reports whether a cell range ends with its own closing pipe.
func (p *patcher) closedByPipe(rng Range) bool {
	if rng.Len() < 2 || p.src[rng.End-1] != '|' {
		return false
	}
	return p.src[rng.End-2] != '\\'
}

func (p *patcher) add(patch Patch) {
	p.patches = append(p.patches, patch)
}
