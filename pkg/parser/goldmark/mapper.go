package goldmark

import (
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/gomdtable/pkg/mdast"
)

// mapper converts a goldmark AST into an mdast.Node tree. Inline content is
// not mapped; tables are rebuilt from their source lines in table.go.
type mapper struct {
	file   *mdast.FileSnapshot
	source string
}

// newMapper creates a new mapper for the given snapshot.
func newMapper(file *mdast.FileSnapshot) *mapper {
	return &mapper{file: file, source: string(file.Content)}
}

// mapDocument converts a goldmark document node to an mdast.Node tree.
func (m *mapper) mapDocument(gmDoc ast.Node) *mdast.Node {
	doc := mdast.NewDocument()
	mdast.SetRange(doc, 0, len(m.source))
	m.mapChildren(gmDoc, doc)
	return doc
}

// mapChildren maps the block children of a goldmark node.
func (m *mapper) mapChildren(gmParent ast.Node, parent *mdast.Node) {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		if mdNode := m.mapNode(child); mdNode != nil {
			mdast.AppendChild(parent, mdNode)
		}
	}
}

// mapNode converts a single goldmark block node. Inline nodes map to nil.
func (m *mapper) mapNode(gmNode ast.Node) *mdast.Node {
	if gmNode.Type() == ast.TypeInline {
		return nil
	}

	var node *mdast.Node

	switch gmn := gmNode.(type) {
	case *ast.Heading:
		node = mdast.NewNode(mdast.NodeHeading)
		node.Block = mdast.NewBlockAttrs().WithHeadingLevel(gmn.Level)

	case *ast.Paragraph, *ast.TextBlock:
		node = mdast.NewNode(mdast.NodeParagraph)

	case *ast.List:
		node = mdast.NewNode(mdast.NodeList)
		node.Block = mdast.NewBlockAttrs().WithList(&mdast.ListAttrs{
			Ordered:     gmn.IsOrdered(),
			StartNumber: gmn.Start,
			Tight:       gmn.IsTight,
		})
		m.mapChildren(gmn, node)

	case *ast.ListItem:
		node = mdast.NewNode(mdast.NodeListItem)
		m.mapChildren(gmn, node)

	case *ast.Blockquote:
		node = mdast.NewNode(mdast.NodeBlockquote)
		m.mapChildren(gmn, node)

	case *ast.FencedCodeBlock:
		info := ""
		if gmn.Info != nil {
			info = string(gmn.Info.Value(m.file.Content))
		}
		node = mdast.NewNode(mdast.NodeCodeBlock)
		node.Block = mdast.NewBlockAttrs().WithCodeBlock(&mdast.CodeBlockAttrs{Info: info})

	case *ast.CodeBlock:
		node = mdast.NewNode(mdast.NodeCodeBlock)
		node.Block = mdast.NewBlockAttrs().WithCodeBlock(&mdast.CodeBlockAttrs{Indented: true})

	case *ast.ThematicBreak:
		node = mdast.NewNode(mdast.NodeThematicBreak)

	case *ast.HTMLBlock:
		node = mdast.NewNode(mdast.NodeHTMLBlock)

	case *east.Table:
		return m.mapTable(gmn)

	default:
		node = mdast.NewNode(mdast.NodeRaw)
		m.mapChildren(gmNode, node)
	}

	if start, end := blockByteRange(gmNode); start >= 0 {
		mdast.SetRange(node, start, end)
	}
	return node
}

// blockByteRange returns the span of a block's own lines, or (-1, -1) for
// container blocks that have none.
func blockByteRange(gmNode ast.Node) (int, int) {
	lines := gmNode.Lines()
	if lines == nil || lines.Len() == 0 {
		return -1, -1
	}

	first := lines.At(0)
	last := lines.At(lines.Len() - 1)

	return first.Start, last.Stop
}
