package tablefmt

import "strings"

// Align pads text with spaces to width display columns. Left and none pad on
// the right, right pads on the left, and center puts the smaller half of the
// padding on the left. Text already at or beyond width is returned as is.
func Align(text string, width int, a Alignment) string {
	pad := width - Width(text)
	if pad <= 0 {
		return text
	}
	switch a {
	case AlignRight:
		return strings.Repeat(" ", pad) + text
	case AlignCenter:
		left := pad / 2
		return strings.Repeat(" ", left) + text + strings.Repeat(" ", pad-left)
	case AlignNone, AlignLeft:
		return text + strings.Repeat(" ", pad)
	default:
		return text + strings.Repeat(" ", pad)
	}
}

// CellFragment renders the source fragment owned by one cell: "| value "
// for inner columns and "| value |" for the last column.
func CellFragment(text string, width int, a Alignment, last bool) string {
	return fragment(Align(text, width, a), last)
}

// DelimiterCell renders the marker for one column of the delimiter row.
func DelimiterCell(width int, a Alignment) string {
	switch a {
	case AlignLeft:
		return ":" + dashes(width-1)
	case AlignRight:
		return dashes(width-1) + ":"
	case AlignCenter:
		return ":" + dashes(width-2) + ":"
	case AlignNone:
		return dashes(width)
	default:
		return dashes(width)
	}
}

// DelimiterFragment is the delimiter row counterpart of CellFragment.
func DelimiterFragment(width int, a Alignment, last bool) string {
	return fragment(DelimiterCell(width, a), last)
}

// RenderRow renders a full row. values, widths and alignments are indexed by
// column; missing values render as empty cells.
func RenderRow(values []string, widths []int, alignments []Alignment) string {
	var b strings.Builder
	for c, w := range widths {
		var v string
		if c < len(values) {
			v = values[c]
		}
		b.WriteString(CellFragment(v, w, alignmentAt(alignments, c), c == len(widths)-1))
	}
	return b.String()
}

// RenderDelimiter renders the delimiter row for the given columns.
func RenderDelimiter(widths []int, alignments []Alignment) string {
	var b strings.Builder
	for c, w := range widths {
		b.WriteString(DelimiterFragment(w, alignmentAt(alignments, c), c == len(widths)-1))
	}
	return b.String()
}

// Render renders the whole table. The first line carries no prefix since it
// follows the prefix already present in the source; every later line starts
// with prefix. Lines are joined with eol.
func (l *Layout) Render(prefix, eol string) string {
	if l == nil || len(l.Values) == 0 {
		return ""
	}
	lines := make([]string, 0, len(l.Values)+1)
	lines = append(lines, RenderRow(l.Values[0], l.Widths, l.Alignments))
	lines = append(lines, RenderDelimiter(l.Widths, l.Alignments))
	for _, values := range l.Values[1:] {
		lines = append(lines, RenderRow(values, l.Widths, l.Alignments))
	}
	return strings.Join(lines, eol+prefix)
}

func fragment(content string, last bool) string {
	if last {
		return "| " + content + " |"
	}
	return "| " + content + " "
}

func dashes(n int) string {
	return strings.Repeat("-", max(1, n))
}

func alignmentAt(alignments []Alignment, c int) Alignment {
	if c < len(alignments) {
		return alignments[c]
	}
	return AlignNone
}
