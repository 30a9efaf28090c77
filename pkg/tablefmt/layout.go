package tablefmt

// MinColumnWidth is the narrowest column GFM accepts in a delimiter row.
const MinColumnWidth = 3

// Layout is the canonical shape of one table: a width and an alignment per
// column and the text of every cell, padded to ColumnCount per row.
type Layout struct {
	ColumnCount int
	Widths      []int
	Alignments  []Alignment
	Values      [][]string
}

// BuildLayout computes the layout of t over src. It returns nil for a table
// with no rows or no columns.
func BuildLayout(t *Table, src string) *Layout {
	if t == nil || len(t.Rows) == 0 {
		return nil
	}
	n := t.ColumnCount()
	if n == 0 {
		return nil
	}

	l := &Layout{
		ColumnCount: n,
		Widths:      make([]int, n),
		Alignments:  make([]Alignment, n),
		Values:      make([][]string, len(t.Rows)),
	}

	for r, row := range t.Rows {
		values := make([]string, n)
		for c, cell := range row.Cells {
			values[c] = CellText(cell, src)
		}
		l.Values[r] = values
	}

	for c := range n {
		w := MinColumnWidth
		for _, values := range l.Values {
			w = max(w, Width(values[c]))
		}
		l.Widths[c] = w
		if c < len(t.Alignments) {
			l.Alignments[c] = t.Alignments[c]
		}
	}

	return l
}
