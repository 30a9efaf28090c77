package fix

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// contextLines surround each change in a hunk.
const contextLines = 3

// DiffLineKind marks a diff line as unchanged, added or removed.
type DiffLineKind int

const (
	DiffLineContext DiffLineKind = iota
	DiffLineAdd
	DiffLineRemove
)

// Prefix is the unified-diff marker for the kind.
func (k DiffLineKind) Prefix() string {
	switch k {
	case DiffLineAdd:
		return "+"
	case DiffLineRemove:
		return "-"
	default:
		return " "
	}
}

// DiffLine is one line of a hunk, without its marker or newline.
type DiffLine struct {
	Kind    DiffLineKind
	Content string
}

// DiffHunk is a run of changes plus context. Starts are 1-based; a side
// with no lines starts at the line before the hunk.
type DiffHunk struct {
	OriginalStart int
	OriginalCount int
	ModifiedStart int
	ModifiedCount int
	Lines         []DiffLine
}

// Header returns the "@@ -a,b +c,d @@" line.
func (h DiffHunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OriginalStart, h.OriginalCount, h.ModifiedStart, h.ModifiedCount)
}

// Diff is a line diff of one file.
type Diff struct {
	Path      string
	Hunks     []DiffHunk
	Additions int
	Deletions int
}

// GenerateDiff diffs original against modified line by line. A rewritten
// table row shows as one removed and one added line. It returns nil when
// the contents are equal.
func GenerateDiff(path string, original, modified []byte) *Diff {
	if bytes.Equal(original, modified) {
		return nil
	}

	d := &Diff{Path: path, Hunks: groupHunks(lineOps(string(original), string(modified)))}
	if len(d.Hunks) == 0 {
		return nil
	}
	for _, h := range d.Hunks {
		for _, line := range h.Lines {
			switch line.Kind {
			case DiffLineAdd:
				d.Additions++
			case DiffLineRemove:
				d.Deletions++
			case DiffLineContext:
			}
		}
	}
	return d
}

// HasChanges reports whether d holds at least one hunk.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// DisplayPath is Path without a leading slash, as used in diff headers.
func (d *Diff) DisplayPath() string {
	return strings.TrimPrefix(d.Path, "/")
}

// String renders the "---"/"+++" headers and every hunk.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	var b strings.Builder
	path := d.DisplayPath()
	b.WriteString("--- a/" + path + "\n")
	b.WriteString("+++ b/" + path + "\n")
	for _, h := range d.Hunks {
		b.WriteString(h.Header() + "\n")
		for _, line := range h.Lines {
			b.WriteString(line.Kind.Prefix() + line.Content + "\n")
		}
	}
	return b.String()
}

// FullString is String preceded by a "diff --git" line.
func (d *Diff) FullString() string {
	if !d.HasChanges() {
		return ""
	}
	path := d.DisplayPath()
	return "diff --git a/" + path + " b/" + path + "\n" + d.String()
}

type diffOp struct {
	kind DiffLineKind
	text string
}

// lineOps runs diff-match-patch in line mode and flattens the result to
// one op per line.
func lineOps(original, modified string) []diffOp {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToRunes(original, modified)
	diffs := dmp.DiffCharsToLines(dmp.DiffMainRunes(a, b, false), lines)

	var ops []diffOp
	for _, d := range diffs {
		kind := DiffLineContext
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			kind = DiffLineAdd
		case diffmatchpatch.DiffDelete:
			kind = DiffLineRemove
		case diffmatchpatch.DiffEqual:
		}

		if d.Text == "" {
			continue
		}
		for _, line := range strings.Split(strings.TrimSuffix(d.Text, "\n"), "\n") {
			ops = append(ops, diffOp{kind: kind, text: line})
		}
	}
	return ops
}

// groupHunks cuts ops into hunks. Changes whose context windows touch or
// overlap share a hunk.
func groupHunks(ops []diffOp) []DiffHunk {
	var hunks []DiffHunk
	lo, hi := -1, -1
	for i, op := range ops {
		if op.kind == DiffLineContext {
			continue
		}
		start := max(i-contextLines, 0)
		if lo >= 0 && start > hi {
			hunks = append(hunks, makeHunk(ops, lo, hi))
			lo = -1
		}
		if lo < 0 {
			lo = start
		}
		hi = min(i+1+contextLines, len(ops))
	}
	if lo >= 0 {
		hunks = append(hunks, makeHunk(ops, lo, hi))
	}
	return hunks
}

func makeHunk(ops []diffOp, lo, hi int) DiffHunk {
	h := DiffHunk{OriginalStart: 1, ModifiedStart: 1}
	for _, op := range ops[:lo] {
		if op.kind != DiffLineAdd {
			h.OriginalStart++
		}
		if op.kind != DiffLineRemove {
			h.ModifiedStart++
		}
	}

	h.Lines = make([]DiffLine, 0, hi-lo)
	for _, op := range ops[lo:hi] {
		h.Lines = append(h.Lines, DiffLine{Kind: op.kind, Content: op.text})
		if op.kind != DiffLineAdd {
			h.OriginalCount++
		}
		if op.kind != DiffLineRemove {
			h.ModifiedCount++
		}
	}

	if h.OriginalCount == 0 {
		h.OriginalStart--
	}
	if h.ModifiedCount == 0 {
		h.ModifiedStart--
	}
	return h
}
