package mdast

// NodeKind classifies the type of an AST node.
type NodeKind uint16

// Node kinds. The set is closed: every switch over NodeKind in this module
// handles each kind explicitly.
const (
	NodeDocument NodeKind = iota

	// Block-level nodes.
	NodeParagraph
	NodeHeading
	NodeList
	NodeListItem
	NodeBlockquote
	NodeCodeBlock
	NodeThematicBreak
	NodeHTMLBlock

	// GFM table nodes. A Table holds TableRow children, the first of which
	// is the header row; a TableRow holds TableCell children.
	NodeTable
	NodeTableRow
	NodeTableCell

	// NodeText spans literal inline content, such as the text of a cell.
	NodeText

	// Fallback for unrecognized content.
	NodeRaw
)

// String returns the kind name without the Node prefix.
func (k NodeKind) String() string {
	switch k {
	case NodeDocument:
		return "Document"
	case NodeParagraph:
		return "Paragraph"
	case NodeHeading:
		return "Heading"
	case NodeList:
		return "List"
	case NodeListItem:
		return "ListItem"
	case NodeBlockquote:
		return "Blockquote"
	case NodeCodeBlock:
		return "CodeBlock"
	case NodeThematicBreak:
		return "ThematicBreak"
	case NodeHTMLBlock:
		return "HTMLBlock"
	case NodeTable:
		return "Table"
	case NodeTableRow:
		return "TableRow"
	case NodeTableCell:
		return "TableCell"
	case NodeText:
		return "Text"
	case NodeRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// Node represents a single node in the Markdown AST.
// Nodes form a tree structure with parent/child/sibling relationships.
type Node struct {
	// Kind identifies what type of node this is.
	Kind NodeKind

	// Tree structure pointers.
	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// Range is the node's byte range in File.Content. Both offsets are -1
	// when the parser could not resolve a position.
	Range SourceRange

	// File is a back-reference to the containing FileSnapshot.
	File *FileSnapshot

	// Block holds attributes for block-level and table nodes.
	Block *BlockAttrs
}

// IsBlock returns true if this is a block-level node.
func (n *Node) IsBlock() bool {
	switch n.Kind {
	case NodeDocument, NodeParagraph, NodeHeading, NodeList, NodeListItem,
		NodeBlockquote, NodeCodeBlock, NodeThematicBreak, NodeHTMLBlock,
		NodeTable:
		return true
	case NodeTableRow, NodeTableCell, NodeText, NodeRaw:
		return false
	default:
		return false
	}
}

// IsTablePart returns true for tables, rows and cells.
func (n *Node) IsTablePart() bool {
	switch n.Kind {
	case NodeTable, NodeTableRow, NodeTableCell:
		return true
	case NodeDocument, NodeParagraph, NodeHeading, NodeList, NodeListItem,
		NodeBlockquote, NodeCodeBlock, NodeThematicBreak, NodeHTMLBlock,
		NodeText, NodeRaw:
		return false
	default:
		return false
	}
}

// HasChildren returns true if this node has any children.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	count := 0
	for child := n.FirstChild; child != nil; child = child.Next {
		count++
	}
	return count
}

// Children returns a slice of all direct children.
func (n *Node) Children() []*Node {
	var children []*Node
	for child := n.FirstChild; child != nil; child = child.Next {
		children = append(children, child)
	}
	return children
}
