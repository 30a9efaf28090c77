package reporter

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

// sourceContext prepares a source line for display under a diagnostic.
// Tabs become single spaces, the line is cut to maxWidth terminal columns,
// and the caret position is translated from a 1-based byte column to a
// 1-based display column. The returned caret is 0 when the column falls
// past the visible part of the line.
func sourceContext(line string, byteCol, maxWidth int) (string, int) {
	line = strings.ReplaceAll(line, "\t", " ")

	caret := 0
	if byteCol >= 1 {
		end := min(byteCol-1, len(line))
		for end > 0 && end < len(line) && !utf8.RuneStart(line[end]) {
			end--
		}
		prefix := line[:end]
		caret = runewidth.StringWidth(prefix) + 1
	}

	if maxWidth > 0 && runewidth.StringWidth(line) > maxWidth {
		line = runewidth.Truncate(line, maxWidth, ellipsis)
		if caret > maxWidth-runewidth.StringWidth(ellipsis) {
			caret = 0
		}
	}

	return line, caret
}
