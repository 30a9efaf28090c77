package mdast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdtable/pkg/mdast"
)

// tableTree builds:
//
//	Document
//	  Heading
//	    Text
//	  Table
//	    TableRow
//	      TableCell
//	        Text
//	      TableCell
func tableTree() *mdast.Node {
	doc := mdast.NewDocument()

	heading := mdast.NewNode(mdast.NodeHeading)
	mdast.AppendChild(heading, mdast.NewNode(mdast.NodeText))
	mdast.AppendChild(doc, heading)

	table := mdast.NewNode(mdast.NodeTable)
	row := mdast.NewNode(mdast.NodeTableRow)
	cell := mdast.NewNode(mdast.NodeTableCell)
	mdast.AppendChild(cell, mdast.NewNode(mdast.NodeText))
	mdast.AppendChild(row, cell)
	mdast.AppendChild(row, mdast.NewNode(mdast.NodeTableCell))
	mdast.AppendChild(table, row)
	mdast.AppendChild(doc, table)

	return doc
}

func kinds(seq func(func(*mdast.Node) bool)) []mdast.NodeKind {
	var out []mdast.NodeKind
	for n := range seq {
		out = append(out, n.Kind)
	}
	return out
}

func TestAll(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []mdast.NodeKind{
		mdast.NodeDocument,
		mdast.NodeHeading,
		mdast.NodeText,
		mdast.NodeTable,
		mdast.NodeTableRow,
		mdast.NodeTableCell,
		mdast.NodeText,
		mdast.NodeTableCell,
	}, kinds(mdast.All(tableTree())))

	assert.Empty(t, kinds(mdast.All(nil)))
}

func TestAll_Break(t *testing.T) {
	t.Parallel()

	visited := 0
	for n := range mdast.All(tableTree()) {
		visited++
		if n.Kind == mdast.NodeTable {
			break
		}
	}
	assert.Equal(t, 4, visited)
}

func TestOfKind(t *testing.T) {
	t.Parallel()

	doc := tableTree()

	cells := mdast.FindByKind(doc, mdast.NodeTableCell)
	require.Len(t, cells, 2)
	assert.Same(t, cells[0].Next, cells[1])

	assert.Len(t, mdast.FindByKind(doc, mdast.NodeText), 2)
	assert.Empty(t, mdast.FindByKind(doc, mdast.NodeCodeBlock))

	for table := range mdast.OfKind(doc, mdast.NodeTable) {
		assert.Equal(t, []mdast.NodeKind{mdast.NodeTableRow}, kinds(table.ChildNodes()))
		break
	}
}

func TestChildNodes_Break(t *testing.T) {
	t.Parallel()

	row := mdast.FindByKind(tableTree(), mdast.NodeTableRow)[0]

	var first *mdast.Node
	for child := range row.ChildNodes() {
		first = child
		break
	}
	assert.Same(t, row.FirstChild, first)
}
