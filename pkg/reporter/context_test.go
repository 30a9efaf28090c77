package reporter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceContext(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		line      string
		byteCol   int
		maxWidth  int
		wantLine  string
		wantCaret int
	}{
		{"ascii", "| a | b |", 5, 80, "| a | b |", 5},
		{"no column", "| a |", 0, 80, "| a |", 0},
		{"wide runes before caret", "| 日本 | x |", 10, 80, "| 日本 | x |", 8},
		{"column inside a rune", "| 日本 |", 4, 80, "| 日本 |", 3},
		{"column past end", "| a |", 40, 80, "| a |", 6},
		{"tabs become spaces", "\t| a |", 2, 80, " | a |", 2},
		{"truncated keeps caret", "| aaaaaaaaaa | b |", 3, 8, "| aaaaa…", 3},
		{"truncated drops caret", "| aaaaaaaaaa | b |", 16, 8, "| aaaaa…", 0},
		{"unlimited width", "| aaaaaaaaaa | b |", 1, 0, "| aaaaaaaaaa | b |", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			line, caret := sourceContext(tt.line, tt.byteCol, tt.maxWidth)
			assert.Equal(t, tt.wantLine, line)
			assert.Equal(t, tt.wantCaret, caret)
		})
	}
}

func TestDisplayPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		path       string
		workingDir string
		want       string
	}{
		{"relative stays", "docs/a.md", "/repo", "docs/a.md"},
		{"no working dir", "/repo/a.md", "", "/repo/a.md"},
		{"beneath working dir", "/repo/docs/a.md", "/repo", "docs/a.md"},
		{"outside working dir", "/other/a.md", "/repo", "/other/a.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, displayPath(tt.path, tt.workingDir))
		})
	}
}

func TestOptionsWidth(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 42, Options{Width: 42}.width())
	assert.Equal(t, DefaultWidth, Options{}.width())
}
