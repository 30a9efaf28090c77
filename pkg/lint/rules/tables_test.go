package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdtable/pkg/config"
	"github.com/yaklabco/gomdtable/pkg/fix"
	"github.com/yaklabco/gomdtable/pkg/lint"
	"github.com/yaklabco/gomdtable/pkg/parser/goldmark"
)

// applyRule parses input with the given flavor and runs rule over it.
func applyRule(t *testing.T, rule lint.Rule, input string, flavor config.Flavor, ruleCfg *config.RuleConfig) []lint.Diagnostic {
	t.Helper()

	snapshot, err := goldmark.New(flavor).Parse(context.Background(), "test.md", []byte(input))
	require.NoError(t, err)

	cfg := config.NewConfig()
	cfg.Flavor = flavor

	diags, err := rule.Apply(lint.NewRuleContext(context.Background(), snapshot, cfg, ruleCfg))
	require.NoError(t, err)
	return diags
}

// fixed applies every edit carried by diags to input.
func fixed(t *testing.T, input string, diags []lint.Diagnostic) string {
	t.Helper()

	var edits []fix.TextEdit
	for _, d := range diags {
		edits = append(edits, d.FixEdits...)
	}
	prepared, err := fix.PrepareEdits(edits, len(input))
	require.NoError(t, err)
	return string(fix.ApplyEdits([]byte(input), prepared))
}

func TestTableColumnStyleRule_Metadata(t *testing.T) {
	t.Parallel()

	rule := NewTableColumnStyleRule()
	assert.Equal(t, "MD060", rule.ID())
	assert.Equal(t, "table-column-style", rule.Name())
	assert.True(t, rule.CanFix())
	assert.True(t, rule.DefaultEnabled())
	assert.Equal(t, []string{"table", "whitespace"}, rule.Tags())
}

func TestTableColumnStyleRule_Diagnostics(t *testing.T) {
	t.Parallel()

	input := "| a | b |\n|---|---|\n| longer | x |\n"
	diags := applyRule(t, NewTableColumnStyleRule(), input, config.FlavorGFM, nil)
	require.Len(t, diags, 5)

	type want struct {
		line, col int
		message   string
	}
	wants := []want{
		{1, 2, "Table is not aligned: header row, column 1"},
		{1, 6, "Table is not aligned: header row, column 2"},
		{2, 2, "Table is not aligned: delimiter row, column 1"},
		{2, 6, "Table is not aligned: delimiter row, column 2"},
		{3, 11, "Table is not aligned: row 1, column 2"},
	}

	for i, w := range wants {
		d := diags[i]
		assert.Equal(t, "MD060", d.RuleID)
		assert.Equal(t, "test.md", d.FilePath)
		assert.Equal(t, w.line, d.StartLine, "diagnostic %d", i)
		assert.Equal(t, w.col, d.StartColumn, "diagnostic %d", i)
		assert.Equal(t, w.message, d.Message)
		assert.Equal(t, config.SeverityWarning, d.Severity)
		assert.Len(t, d.FixEdits, 1)
	}

	assert.Equal(t, fix.TextEdit{StartOffset: 0, EndOffset: 4, NewText: "| a      "}, diags[0].FixEdits[0])
	assert.Equal(t, fix.TextEdit{StartOffset: 29, EndOffset: 34, NewText: "| x   |"}, diags[4].FixEdits[0])
}

func TestTableColumnStyleRule_Fix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "pads every column",
			input: "| a | b |\n|---|---|\n| longer | x |\n",
			want:  "| a      | b   |\n| ------ | --- |\n| longer | x   |\n",
		},
		{
			name:  "keeps alignment markers",
			input: "| a | b | c |\n|:-|:-:|-:|\n| 1 | 2 | 3 |\n",
			want:  "| a   |  b  |   c |\n| :-- | :-: | --: |\n| 1   |  2  |   3 |\n",
		},
		{
			name:  "adds outer pipes",
			input: "a | b\n--|--\nc | d\n",
			want:  "| a   | b   |\n| --- | --- |\n| c   | d   |\n",
		},
		{
			name:  "pads short rows",
			input: "| a | b |\n| --- | --- |\n| c |\n",
			want:  "| a   | b   |\n| --- | --- |\n| c   |     |\n",
		},
		{
			name:  "wide characters",
			input: "| 名前 | x |\n| --- | --- |\n| ab | y |\n",
			want:  "| 名前 | x   |\n| ---- | --- |\n| ab   | y   |\n",
		},
		{
			name:  "transport emoji",
			input: "| 🚀 | b |\n|---|---|\n| x | 🛠 |\n",
			want:  "| 🚀  | b   |\n| --- | --- |\n| x   | 🛠  |\n",
		},
		{
			name:  "escaped pipe stays in its cell",
			input: "| a \\| b | c |\n| --- | --- |\n",
			want:  "| a \\| b | c   |\n| ------ | --- |\n",
		},
		{
			name:  "crlf line endings",
			input: "| a | b |\r\n|---|---|\r\n",
			want:  "| a   | b   |\r\n| --- | --- |\r\n",
		},
		{
			name:  "surrounding text untouched",
			input: "# Title\n\n| a |\n|-|\n\nAfter.\n",
			want:  "# Title\n\n| a   |\n| --- |\n\nAfter.\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rule := NewTableColumnStyleRule()
			diags := applyRule(t, rule, tt.input, config.FlavorGFM, nil)
			require.NotEmpty(t, diags)

			got := fixed(t, tt.input, diags)
			assert.Equal(t, tt.want, got)

			assert.Empty(t, applyRule(t, rule, got, config.FlavorGFM, nil), "fixed table should be stable")
		})
	}
}

func TestTableColumnStyleRule_NoDiagnostics(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		flavor config.Flavor
	}{
		{
			name:   "aligned table",
			input:  "| a      | b   |\n| ------ | --- |\n| longer | x   |\n",
			flavor: config.FlavorGFM,
		},
		{
			name:   "commonmark has no tables",
			input:  "| a | b |\n|---|---|\n",
			flavor: config.FlavorCommonMark,
		},
		{
			name:   "no table",
			input:  "Just some text.\n",
			flavor: config.FlavorGFM,
		},
		{
			name:   "empty document",
			input:  "",
			flavor: config.FlavorGFM,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Empty(t, applyRule(t, NewTableColumnStyleRule(), tt.input, tt.flavor, nil))
		})
	}
}

func TestTableColumnStyleRule_Cancelled(t *testing.T) {
	t.Parallel()

	input := []byte("| a | b |\n|---|---|\n")
	snapshot, err := goldmark.New("gfm").Parse(context.Background(), "test.md", input)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := config.NewConfig()
	cfg.Flavor = config.FlavorGFM

	_, err = NewTableColumnStyleRule().Apply(lint.NewRuleContext(ctx, snapshot, cfg, nil))
	require.ErrorIs(t, err, context.Canceled)
}

func TestTableColumnCountRule(t *testing.T) {
	t.Parallel()

	allowExtra := &config.RuleConfig{Options: map[string]any{"allow-extra-cells": true}}

	tests := []struct {
		name     string
		input    string
		flavor   config.Flavor
		ruleCfg  *config.RuleConfig
		wantMsgs []string
	}{
		{
			name:   "consistent columns",
			input:  "| A | B | C |\n| --- | --- | --- |\n| 1 | 2 | 3 |\n| 4 | 5 | 6 |\n",
			flavor: config.FlavorGFM,
		},
		{
			name:     "short row",
			input:    "| A | B | C |\n| --- | --- | --- |\n| 1 | 2 |\n| 4 | 5 | 6 |\n",
			flavor:   config.FlavorGFM,
			wantMsgs: []string{"Table row 1 has 2 cells, header has 3"},
		},
		{
			name:     "extra cells",
			input:    "| A | B |\n| --- | --- |\n| 1 | 2 | 3 |\n",
			flavor:   config.FlavorGFM,
			wantMsgs: []string{"Table row 1 has 3 cells, header has 2"},
		},
		{
			name:    "extra cells allowed",
			input:   "| A | B |\n| --- | --- |\n| 1 | 2 | 3 |\n",
			flavor:  config.FlavorGFM,
			ruleCfg: allowExtra,
		},
		{
			name:     "short row still reported when extra cells are allowed",
			input:    "| A | B |\n| --- | --- |\n| 1 | 2 | 3 |\n| 4 |\n",
			flavor:   config.FlavorGFM,
			ruleCfg:  allowExtra,
			wantMsgs: []string{"Table row 2 has 1 cells, header has 2"},
		},
		{
			name:   "skipped for commonmark",
			input:  "| A | B | C |\n| --- | --- | --- |\n| 1 | 2 |\n",
			flavor: config.FlavorCommonMark,
		},
		{
			name:   "no table",
			input:  "Just some text.",
			flavor: config.FlavorGFM,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			diags := applyRule(t, NewTableColumnCountRule(), tt.input, tt.flavor, tt.ruleCfg)

			msgs := make([]string, 0, len(diags))
			for _, d := range diags {
				msgs = append(msgs, d.Message)
				assert.Equal(t, "MD056", d.RuleID)
				assert.False(t, d.HasFix())
			}
			if len(tt.wantMsgs) == 0 {
				assert.Empty(t, msgs)
				return
			}
			assert.Equal(t, tt.wantMsgs, msgs)
		})
	}
}

func TestTableColumnCountRule_Position(t *testing.T) {
	t.Parallel()

	input := "| A | B |\n| --- | --- |\n| 1 | 2 |\n| 3 |\n"
	diags := applyRule(t, NewTableColumnCountRule(), input, config.FlavorGFM, nil)
	require.Len(t, diags, 1)

	assert.Equal(t, 4, diags[0].StartLine)
	assert.Equal(t, 1, diags[0].StartColumn)
}
