package tablefmt

import "strings"

// CellText returns the trimmed source text of a cell's content, or "" for a
// cell without content or with a content range outside src.
func CellText(c Cell, src string) string {
	if !c.Content.within(len(src)) {
		return ""
	}
	return strings.TrimSpace(src[c.Content.Start:c.Content.End])
}
