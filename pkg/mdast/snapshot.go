// Package mdast provides the Markdown syntax tree consumed by gomdtable's
// rules: a FileSnapshot holding the raw content and its line index, and a
// tree of nodes carrying byte ranges into that content.
package mdast

import (
	"bytes"
	"sort"
)

// FileSnapshot is one parse of a file: its bytes, their line index and the
// tree built over them. Nothing mutates a snapshot after parsing.
type FileSnapshot struct {
	Path    string
	Content []byte
	Lines   []LineInfo
	Root    *Node
}

// LineInfo locates one line. NewlineStart is where the "\n" or "\r\n"
// terminator begins, or EndOffset for an unterminated last line.
type LineInfo struct {
	StartOffset  int
	NewlineStart int
	EndOffset    int
}

// NewFileSnapshot indexes content without parsing it.
func NewFileSnapshot(path string, content []byte) *FileSnapshot {
	return &FileSnapshot{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
	}
}

// BuildLines indexes the lines of content. A trailing newline opens a
// final empty line; empty content has no lines.
func BuildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	lines := make([]LineInfo, 0, bytes.Count(content, []byte{'\n'})+1)
	start := 0
	for {
		idx := bytes.IndexByte(content[start:], '\n')
		if idx < 0 {
			break
		}
		nl := start + idx
		brk := nl
		if brk > start && content[brk-1] == '\r' {
			brk--
		}
		lines = append(lines, LineInfo{StartOffset: start, NewlineStart: brk, EndOffset: nl + 1})
		start = nl + 1
	}

	return append(lines, LineInfo{StartOffset: start, NewlineStart: len(content), EndOffset: len(content)})
}

// LineAt maps a byte offset to a 1-based line and byte column. Offsets at
// or past the end land on the last line; negative offsets give (0, 0).
func (f *FileSnapshot) LineAt(offset int) (line, col int) {
	if offset < 0 || len(f.Lines) == 0 {
		return 0, 0
	}

	idx := len(f.Lines) - 1
	if offset < len(f.Content) {
		idx = sort.Search(len(f.Lines), func(i int) bool { return f.Lines[i].EndOffset > offset })
		if idx == len(f.Lines) {
			idx--
		}
	}

	return idx + 1, offset - f.Lines[idx].StartOffset + 1
}

// Span maps a byte range to line/column positions.
func (f *FileSnapshot) Span(start, end int) SourcePosition {
	startLine, startCol := f.LineAt(start)
	endLine, endCol := f.LineAt(end)
	return SourcePosition{
		StartLine:   startLine,
		StartColumn: startCol,
		EndLine:     endLine,
		EndColumn:   endCol,
	}
}

// LineContent returns a 1-based line without its terminator, or nil when
// line is out of range.
func (f *FileSnapshot) LineContent(line int) []byte {
	if line < 1 || line > len(f.Lines) {
		return nil
	}
	info := f.Lines[line-1]
	return f.Content[info.StartOffset:info.NewlineStart]
}
