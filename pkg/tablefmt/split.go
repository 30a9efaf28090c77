package tablefmt

import "strings"

// RowRange trims one source line down to its row text. It skips prefix when
// the line starts with it, then any spaces and tabs, and drops trailing
// whitespace including a carriage return.
func RowRange(src string, lineStart, lineEnd int, prefix string) Range {
	line := Range{Start: lineStart, End: lineEnd}
	if !line.within(len(src)) {
		return NoRange
	}
	start, end := lineStart, lineEnd
	if prefix != "" && strings.HasPrefix(src[start:end], prefix) {
		start += len(prefix)
	}
	for start < end && isBlank(src[start]) {
		start++
	}
	for end > start && (isBlank(src[end-1]) || src[end-1] == '\r') {
		end--
	}
	return Range{Start: start, End: end}
}

// SplitRow splits the row text in src[row.Start:row.End] into cells on
// unescaped pipes. A leading pipe opens the first cell and a trailing pipe
// closes the last one; rows without outer pipes are accepted.
func SplitRow(src string, row Range) []Cell {
	if !row.within(len(src)) || row.Len() == 0 {
		return nil
	}

	pipes := unescapedPipes(src, row)
	leading := len(pipes) > 0 && pipes[0] == row.Start
	closed := len(pipes) > 0 && pipes[len(pipes)-1] == row.End-1 && row.End-1 != row.Start

	starts := make([]int, 0, len(pipes)+1)
	if !leading {
		starts = append(starts, row.Start)
	}
	starts = append(starts, pipes...)
	if closed {
		starts = starts[:len(starts)-1]
	}

	cells := make([]Cell, len(starts))
	for i, start := range starts {
		end := row.End
		if i+1 < len(starts) {
			end = starts[i+1]
		}

		inner := Range{Start: start, End: end}
		if i > 0 || leading {
			inner.Start++
		}
		if i == len(starts)-1 && closed {
			inner.End--
		}
		for inner.Start < inner.End && isBlank(src[inner.Start]) {
			inner.Start++
		}
		for inner.End > inner.Start && isBlank(src[inner.End-1]) {
			inner.End--
		}

		cells[i] = Cell{Range: Range{Start: start, End: end}, Content: NoRange}
		if inner.Start < inner.End {
			cells[i].Content = inner
		}
	}
	return cells
}

func unescapedPipes(src string, row Range) []int {
	var pipes []int
	for i := row.Start; i < row.End; i++ {
		if src[i] == '|' && (i == row.Start || src[i-1] != '\\') {
			pipes = append(pipes, i)
		}
	}
	return pipes
}

func isBlank(b byte) bool {
	return b == ' ' || b == '\t'
}
