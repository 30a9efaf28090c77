package mdast

// NoRange is the range of a node whose position could not be resolved.
var NoRange = SourceRange{StartOffset: -1, EndOffset: -1}

// SourceRange is a half-open byte range into FileSnapshot.Content.
type SourceRange struct {
	StartOffset int
	EndOffset   int
}

// Len returns the length of the range in bytes.
func (r SourceRange) Len() int {
	return r.EndOffset - r.StartOffset
}

// Known is false for NoRange and any negative or inverted range.
func (r SourceRange) Known() bool {
	return r.StartOffset >= 0 && r.EndOffset >= r.StartOffset
}

// SourcePosition is a range in 1-based lines and byte columns.
type SourcePosition struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// IsValid reports whether every coordinate is positive.
func (sp SourcePosition) IsValid() bool {
	return sp.StartLine > 0 && sp.StartColumn > 0 &&
		sp.EndLine > 0 && sp.EndColumn > 0
}

// SourcePosition returns the node's line/column range, or the zero value
// when the node is detached from a file or has no known range.
func (n *Node) SourcePosition() SourcePosition {
	if n.File == nil || !n.Range.Known() {
		return SourcePosition{}
	}
	return n.File.Span(n.Range.StartOffset, n.Range.EndOffset)
}

// Text returns the node's source bytes, or nil when they cannot be
// resolved.
func (n *Node) Text() []byte {
	if n.File == nil || !n.Range.Known() || n.Range.EndOffset > len(n.File.Content) {
		return nil
	}
	return n.File.Content[n.Range.StartOffset:n.Range.EndOffset]
}
