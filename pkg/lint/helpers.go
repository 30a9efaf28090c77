package lint

import "github.com/yaklabco/gomdtable/pkg/mdast"

// Table helpers (GFM).

// Tables returns all table nodes in the document, in source order.
// Returns nil if the document has no tables or tables are not parsed (non-GFM).
func Tables(root *mdast.Node) []*mdast.Node {
	return mdast.FindByKind(root, mdast.NodeTable)
}

// TableRows returns the row children of a table, header first.
func TableRows(table *mdast.Node) []*mdast.Node {
	if table == nil || table.Kind != mdast.NodeTable {
		return nil
	}
	return childrenOfKind(table, mdast.NodeTableRow)
}

// HeaderRow returns the header row of a table, or nil if it has none.
func HeaderRow(table *mdast.Node) *mdast.Node {
	for _, row := range TableRows(table) {
		if IsHeaderRow(row) {
			return row
		}
	}
	return nil
}

// BodyRows returns the non-header rows of a table.
func BodyRows(table *mdast.Node) []*mdast.Node {
	var body []*mdast.Node
	for _, row := range TableRows(table) {
		if !IsHeaderRow(row) {
			body = append(body, row)
		}
	}
	return body
}

// IsHeaderRow returns true if the node is a table row marked as the header.
func IsHeaderRow(n *mdast.Node) bool {
	return n != nil && n.Kind == mdast.NodeTableRow && n.Block != nil && n.Block.Header
}

// RowCells returns the cells of a table row in source order.
func RowCells(row *mdast.Node) []*mdast.Node {
	if row == nil || row.Kind != mdast.NodeTableRow {
		return nil
	}
	return childrenOfKind(row, mdast.NodeTableCell)
}

// TableAlignments returns the column alignments declared by a table's
// delimiter row. Returns nil for non-table nodes.
func TableAlignments(table *mdast.Node) []mdast.Alignment {
	if table == nil || table.Kind != mdast.NodeTable || table.Block == nil || table.Block.Table == nil {
		return nil
	}
	return table.Block.Table.Alignments
}

// CellContentRange returns the range of a cell's trimmed content.
// Returns mdast.NoRange for empty cells.
func CellContentRange(cell *mdast.Node) mdast.SourceRange {
	if cell == nil {
		return mdast.NoRange
	}
	for _, child := range cell.Children() {
		if child.Kind == mdast.NodeText {
			return child.Range
		}
	}
	return mdast.NoRange
}

func childrenOfKind(parent *mdast.Node, kind mdast.NodeKind) []*mdast.Node {
	var out []*mdast.Node
	for child := parent.FirstChild; child != nil; child = child.Next {
		if child.Kind == kind {
			out = append(out, child)
		}
	}
	return out
}
