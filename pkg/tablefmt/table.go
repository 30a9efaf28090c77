package tablefmt

// Range is a half-open byte range [Start, End) into the source text.
type Range struct {
	Start int
	End   int
}

// NoRange marks a position the host could not resolve.
var NoRange = Range{Start: -1, End: -1}

// Known reports whether r points into the source.
func (r Range) Known() bool {
	return r.Start >= 0 && r.End >= r.Start
}

// Len returns the byte length of r, or 0 when r is unknown.
func (r Range) Len() int {
	if !r.Known() {
		return 0
	}
	return r.End - r.Start
}

func (r Range) within(n int) bool {
	return r.Known() && r.End <= n
}

// Alignment is a column alignment read from the delimiter row.
type Alignment uint8

const (
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// String returns the alignment name.
func (a Alignment) String() string {
	switch a {
	case AlignNone:
		return "none"
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "unknown"
	}
}

// Cell is one table cell. Range runs from the cell's leading pipe (or the
// first character of the row when the row has no leading pipe) up to the
// next pipe; the last cell of a row also covers the closing pipe. Content
// spans the cell's inline content and is NoRange for an empty cell.
type Cell struct {
	Range   Range
	Content Range
}

// Row is an ordered sequence of cells. Range covers the row text on its
// line, excluding any line prefix and trailing whitespace.
type Row struct {
	Range Range
	Cells []Cell
}

// Table is a view over a parsed pipe table. Rows[0] is the header row; the
// delimiter row is not a Row and is located from the source text.
type Table struct {
	Range      Range
	Rows       []Row
	Alignments []Alignment
}

// ColumnCount returns the declared column count: the larger of the number of
// alignment hints and the widest row.
func (t *Table) ColumnCount() int {
	n := len(t.Alignments)
	for _, row := range t.Rows {
		n = max(n, len(row.Cells))
	}
	return n
}
