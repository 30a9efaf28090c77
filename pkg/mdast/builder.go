package mdast

// NewNode returns a detached node with an unknown range.
func NewNode(kind NodeKind) *Node {
	return &Node{Kind: kind, Range: NoRange}
}

// NewDocument returns an empty document root.
func NewDocument() *Node {
	return NewNode(NodeDocument)
}

// AppendChild makes child the last child of parent, detaching it from any
// previous parent first.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}
	child.detach()

	child.Parent = parent
	child.Prev = parent.LastChild
	if parent.LastChild == nil {
		parent.FirstChild = child
	} else {
		parent.LastChild.Next = child
	}
	parent.LastChild = child
}

func (n *Node) detach() {
	parent := n.Parent
	if parent == nil {
		return
	}

	if n.Prev == nil {
		parent.FirstChild = n.Next
	} else {
		n.Prev.Next = n.Next
	}
	if n.Next == nil {
		parent.LastChild = n.Prev
	} else {
		n.Next.Prev = n.Prev
	}

	n.Parent, n.Prev, n.Next = nil, nil, nil
}

// SetRange sets a node's byte range.
func SetRange(n *Node, start, end int) {
	if n != nil {
		n.Range = SourceRange{StartOffset: start, EndOffset: end}
	}
}

// SetFile points node and all its descendants at file.
func SetFile(node *Node, file *FileSnapshot) {
	for n := range All(node) {
		n.File = file
	}
}
