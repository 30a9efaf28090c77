package mdast

import "iter"

// All yields root and its descendants in document order. Breaking out of
// the loop stops the traversal.
func All(root *Node) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		walk(root, yield)
	}
}

func walk(n *Node, yield func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !yield(n) {
		return false
	}
	for child := n.FirstChild; child != nil; child = child.Next {
		if !walk(child, yield) {
			return false
		}
	}
	return true
}

// OfKind yields the nodes of one kind at or below root in document order.
func OfKind(root *Node, kind NodeKind) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for n := range All(root) {
			if n.Kind == kind && !yield(n) {
				return
			}
		}
	}
}

// FindByKind collects OfKind.
func FindByKind(root *Node, kind NodeKind) []*Node {
	var out []*Node
	for n := range OfKind(root, kind) {
		out = append(out, n)
	}
	return out
}

// ChildNodes yields the direct children of n.
func (n *Node) ChildNodes() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for child := n.FirstChild; child != nil; child = child.Next {
			if !yield(child) {
				return
			}
		}
	}
}
