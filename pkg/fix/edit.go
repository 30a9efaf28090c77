// Package fix applies byte-range edits to file content and renders the
// result as a unified diff.
package fix

// TextEdit replaces content[StartOffset:EndOffset] with NewText. Offsets
// are byte indexes; an empty range is an insertion.
type TextEdit struct {
	StartOffset int
	EndOffset   int
	NewText     string
}

// Replace returns an edit replacing [start, end) with text.
func Replace(start, end int, text string) TextEdit {
	return TextEdit{StartOffset: start, EndOffset: end, NewText: text}
}

// Insert returns an edit inserting text at offset.
func Insert(offset int, text string) TextEdit {
	return Replace(offset, offset, text)
}

// IsInsertion reports whether the edit removes nothing.
func (e TextEdit) IsInsertion() bool {
	return e.StartOffset == e.EndOffset
}

// Delta is the change in content length after applying e.
func (e TextEdit) Delta() int {
	return len(e.NewText) - (e.EndOffset - e.StartOffset)
}

// Overlaps reports whether next, which must not start before e, touches
// bytes e replaces. An insertion exactly at e's end does not overlap.
func (e TextEdit) Overlaps(next TextEdit) bool {
	return next.StartOffset < e.EndOffset
}
