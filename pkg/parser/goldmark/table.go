package goldmark

import (
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/gomdtable/pkg/mdast"
	"github.com/yaklabco/gomdtable/pkg/tablefmt"
)

// mapTable rebuilds a GFM table from its source lines. goldmark drops cells
// beyond the delimiter's column count and pads short rows with empty cells,
// and its rows carry no positions, so only the header is taken from the
// goldmark tree. Each table row occupies one source line: the header, the
// delimiter, then one line per body row.
//
// A table whose header cannot be located keeps an unknown range and no rows.
func (m *mapper) mapTable(table *east.Table) *mdast.Node {
	node := mdast.NewNode(mdast.NodeTable)
	node.Block = mdast.NewBlockAttrs().WithTable(&mdast.TableAttrs{
		Alignments: mapAlignments(table.Alignments),
	})

	headerStart := m.headerRowStart(table)
	if headerStart < 0 {
		return node
	}

	headerLine, _ := m.file.LineAt(headerStart)
	if headerLine == 0 {
		return node
	}
	lineIdx := headerLine - 1
	prefix := m.source[m.file.Lines[lineIdx].StartOffset:headerStart]

	header := m.rowAt(lineIdx, headerStart, "")
	mdast.AppendChild(node, m.mapRow(header, true))
	end := header.End

	if delimiter := m.rowAt(lineIdx+1, -1, prefix); delimiter.Known() {
		end = max(end, delimiter.End)
	}

	bodyRows := table.ChildCount() - 1
	for j := range bodyRows {
		rng := m.rowAt(lineIdx+2+j, -1, prefix)
		if !rng.Known() {
			break
		}
		mdast.AppendChild(node, m.mapRow(rng, false))
		end = rng.End
	}

	mdast.SetRange(node, headerStart, end)
	return node
}

// headerRowStart returns the offset of the header row's first character:
// its leading pipe if it has one, else the first cell's content.
func (m *mapper) headerRowStart(table *east.Table) int {
	header, ok := table.FirstChild().(*east.TableHeader)
	if !ok || header.FirstChild() == nil {
		return -1
	}
	lines := header.FirstChild().Lines()
	if lines == nil || lines.Len() == 0 {
		return -1
	}

	pos := lines.At(0).Start
	line, _ := m.file.LineAt(pos)
	if line == 0 {
		return -1
	}
	lineStart := m.file.Lines[line-1].StartOffset

	for pos > lineStart && isBlank(m.source[pos-1]) {
		pos--
	}
	if pos > lineStart && m.source[pos-1] == '|' {
		pos--
	}
	return pos
}

// rowAt returns the row range on line index idx. When start is non-negative
// the row begins there; otherwise prefix is skipped from the line start.
func (m *mapper) rowAt(idx, start int, prefix string) tablefmt.Range {
	if idx < 0 || idx >= len(m.file.Lines) {
		return tablefmt.NoRange
	}
	line := m.file.Lines[idx]
	if start < 0 {
		start = line.StartOffset
	}
	return tablefmt.RowRange(m.source, start, line.NewlineStart, prefix)
}

func (m *mapper) mapRow(rng tablefmt.Range, header bool) *mdast.Node {
	row := mdast.NewNode(mdast.NodeTableRow)
	row.Block = mdast.NewBlockAttrs().WithHeader(header)
	mdast.SetRange(row, rng.Start, rng.End)

	for _, c := range tablefmt.SplitRow(m.source, rng) {
		cell := mdast.NewNode(mdast.NodeTableCell)
		mdast.SetRange(cell, c.Range.Start, c.Range.End)
		if c.Content.Known() {
			text := mdast.NewNode(mdast.NodeText)
			mdast.SetRange(text, c.Content.Start, c.Content.End)
			mdast.AppendChild(cell, text)
		}
		mdast.AppendChild(row, cell)
	}
	return row
}

func mapAlignments(alignments []east.Alignment) []mdast.Alignment {
	out := make([]mdast.Alignment, len(alignments))
	for i, a := range alignments {
		switch a {
		case east.AlignLeft:
			out[i] = mdast.AlignLeft
		case east.AlignCenter:
			out[i] = mdast.AlignCenter
		case east.AlignRight:
			out[i] = mdast.AlignRight
		case east.AlignNone:
			out[i] = mdast.AlignNone
		default:
			out[i] = mdast.AlignNone
		}
	}
	return out
}

func isBlank(b byte) bool {
	return b == ' ' || b == '\t'
}
