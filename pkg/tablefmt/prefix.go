package tablefmt

import "strings"

// LinePrefix returns the text between the start of the line containing
// offset and offset itself, such as "> " inside a block quote or list
// indentation. Offsets outside src are clamped.
func LinePrefix(src string, offset int) string {
	offset = min(max(offset, 0), len(src))
	lineStart := strings.LastIndexByte(src[:offset], '\n') + 1
	return src[lineStart:offset]
}

// LineEnding returns "\r\n" if text contains one and "\n" otherwise.
func LineEnding(text string) string {
	if strings.Contains(text, "\r\n") {
		return "\r\n"
	}
	return "\n"
}

// lineBounds returns the start of the line containing offset and the offset
// of its terminating newline (or len(src)).
func lineBounds(src string, offset int) (start, end int) {
	offset = min(max(offset, 0), len(src))
	start = strings.LastIndexByte(src[:offset], '\n') + 1
	end = len(src)
	if i := strings.IndexByte(src[offset:], '\n'); i >= 0 {
		end = offset + i
	}
	return start, end
}
