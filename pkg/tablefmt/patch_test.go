package tablefmt_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdtable/pkg/tablefmt"
)

func lines(ls ...string) string {
	return strings.Join(ls, "\n")
}

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		input  string
		want   string
	}{
		{
			name: "alignments",
			input: lines(
				"| A | B | C |",
				"| :- | :-: | -: |",
				"| 1 | 22 | 333 |",
				"| 4444 | 5 | 6 |",
			),
			want: lines(
				"| A    |  B  |   C |",
				"| :--- | :-: | --: |",
				"| 1    | 22  | 333 |",
				"| 4444 |  5  |   6 |",
			),
		},
		{
			name:   "block quote",
			prefix: "> ",
			input: lines(
				"> | Name | Tool |",
				"> | --- | --- |",
				"> | antfu | eslint |",
				"> | hyoban | markdown |",
			),
			want: lines(
				"> | Name   | Tool     |",
				"> | ------ | -------- |",
				"> | antfu  | eslint   |",
				"> | hyoban | markdown |",
			),
		},
		{
			name: "ragged row closed by pipe",
			input: lines(
				"| A | B | C |",
				"| --- | --- | --- |",
				"| 1 | 2 |",
			),
			want: lines(
				"| A   | B   | C   |",
				"| --- | --- | --- |",
				"| 1   | 2   |     |",
			),
		},
		{
			name: "ragged row without closing pipe",
			input: lines(
				"| A | B | C |",
				"| --- | --- | -: |",
				"| 1 | 2",
			),
			want: lines(
				"| A   | B   |   C |",
				"| --- | --- | --: |",
				"| 1   | 2   |     |",
			),
		},
		{
			name: "no outer pipes",
			input: lines(
				"Pilot|Airport|Hours",
				"--|:--:|--:",
				"John Doe|SKG|1338",
				"Jane Roe|JFK|314",
			),
			want: lines(
				"| Pilot    | Airport | Hours |",
				"| -------- | :-----: | ----: |",
				"| John Doe |   SKG   |  1338 |",
				"| Jane Roe |   JFK   |   314 |",
			),
		},
		{
			name: "wide text",
			input: lines(
				"| Word | Note |",
				"| :-: | - |",
				"| 你好你好 | x |",
				"| Hi | y |",
			),
			want: lines(
				"|   Word   | Note |",
				"| :------: | ---- |",
				"| 你好你好 | x    |",
				"|    Hi    | y    |",
			),
		},
		{
			name: "extra body cell widens table",
			input: lines(
				"| a | b |",
				"| --- | --- |",
				"| 1 | 2 | 3 |",
			),
			want: lines(
				"| a   | b   |     |",
				"| --- | --- | --- |",
				"| 1   | 2   | 3   |",
			),
		},
		{
			name: "crlf line endings",
			input: "| a | bb |\r\n|---|---|\r\n| ccc | d |",
			want:  "| a   | bb  |\r\n| --- | --- |\r\n| ccc | d   |",
		},
		{
			name: "escaped pipe",
			input: lines(
				`| expr | note |`,
				`| --- | --- |`,
				`| a \| b | or |`,
			),
			want: lines(
				`| expr   | note |`,
				`| ------ | ---- |`,
				`| a \| b | or   |`,
			),
		},
		{
			name: "header only",
			input: lines(
				"| a | b |",
				"|-|-|",
			),
			want: lines(
				"| a   | b   |",
				"| --- | --- |",
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, patches := format(t, tt.input, tt.prefix)
			assert.Equal(t, tt.want, got)
			assert.NotEmpty(t, patches)

			again, more := format(t, got, tt.prefix)
			assert.Empty(t, more, "second pass must not patch")
			assert.Equal(t, got, again)
		})
	}
}

func TestFormatCanonicalTableHasNoPatches(t *testing.T) {
	t.Parallel()

	src := lines(
		"| A    |  B  |   C |",
		"| :--- | :-: | --: |",
		"| 1    | 22  | 333 |",
		"| 4444 |  5  |   6 |",
	)

	assert.Empty(t, tablefmt.Format(scanTable(t, src, ""), src))
}

func TestPatchesLeaveCorrectCellsAlone(t *testing.T) {
	t.Parallel()

	src := lines(
		"| Alpha | B   | C   |",
		"| ----- | --- | --- |",
		"| x | y   | z |",
	)

	got := tablefmt.Format(scanTable(t, src, ""), src)
	want := []tablefmt.Patch{
		{
			Edit:   tablefmt.Range{Start: 44, End: 48},
			Text:   "| x     ",
			Report: tablefmt.Range{Start: 45, End: 48},
			Kind:   tablefmt.PatchCell,
			Row:    1,
			Column: 0,
		},
		{
			Edit:   tablefmt.Range{Start: 54, End: 59},
			Text:   "| z   |",
			Report: tablefmt.Range{Start: 55, End: 59},
			Kind:   tablefmt.PatchCell,
			Row:    1,
			Column: 2,
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Patches mismatch (-want +got):\n%s", diff)
	}
}

func TestPatchesOrder(t *testing.T) {
	t.Parallel()

	src := lines(
		"| a | b |",
		"| - | - |",
		"| 1 | 2 |",
	)

	patches := tablefmt.Format(scanTable(t, src, ""), src)
	require.NotEmpty(t, patches)

	for i := 1; i < len(patches); i++ {
		assert.LessOrEqual(t, patches[i-1].Edit.End, patches[i].Edit.Start, "patches overlap or are out of order")
	}

	var kinds []tablefmt.PatchKind
	for _, p := range patches {
		kinds = append(kinds, p.Kind)
	}
	assert.Equal(t, []tablefmt.PatchKind{
		tablefmt.PatchCell, tablefmt.PatchCell,
		tablefmt.PatchDelimiterCell, tablefmt.PatchDelimiterCell,
		tablefmt.PatchCell, tablefmt.PatchCell,
	}, kinds)
}

func TestPatchesRaggedRowInsertion(t *testing.T) {
	t.Parallel()

	src := lines(
		"| A   | B   | C   |",
		"| --- | --- | --- |",
		"| 1   | 2   |",
	)

	got := tablefmt.Format(scanTable(t, src, ""), src)
	require.Len(t, got, 1)

	p := got[0]
	assert.Equal(t, tablefmt.PatchInsert, p.Kind)
	assert.Equal(t, 2, p.Column)
	assert.Equal(t, len(src), p.Edit.Start)
	assert.Equal(t, 0, p.Edit.Len())
	assert.Equal(t, "     |", p.Text)
	assert.Equal(t, "| 2   |", src[p.Report.Start:p.Report.End])
}

func TestPatchesDelimiterColumnMismatch(t *testing.T) {
	t.Parallel()

	src := lines(
		"| A   | B   |",
		"| --- |",
		"| 1   | 2   |",
	)

	got := tablefmt.Format(scanTable(t, src, ""), src)
	require.Len(t, got, 1)
	assert.Equal(t, tablefmt.PatchDelimiterRow, got[0].Kind)
	assert.Equal(t, "| --- | --- |", got[0].Text)
	assert.Equal(t, "| --- |", src[got[0].Edit.Start:got[0].Edit.End])
}

func TestPatchesRowWithoutCells(t *testing.T) {
	t.Parallel()

	src := lines(
		"| A   | B   |",
		"| --- | --- |",
		"|",
	)

	table := scanTable(t, src, "")
	table.Rows[1].Cells = nil

	got := tablefmt.Format(table, src)
	require.Len(t, got, 1)
	assert.Equal(t, tablefmt.PatchRow, got[0].Kind)
	assert.Equal(t, "|     |     |", got[0].Text)
}

func TestPatchesWholeTableFallback(t *testing.T) {
	t.Parallel()

	src := "> | a | b |\r\n> |---|---|\r\n> | c | d |"
	content := func(offset int) tablefmt.Cell {
		return tablefmt.Cell{Range: tablefmt.NoRange, Content: tablefmt.Range{Start: offset, End: offset + 1}}
	}
	table := &tablefmt.Table{
		Range: tablefmt.Range{Start: 2, End: len(src)},
		Rows: []tablefmt.Row{
			{Range: tablefmt.NoRange, Cells: []tablefmt.Cell{content(4), content(8)}},
			{Range: tablefmt.NoRange, Cells: []tablefmt.Cell{content(30), content(34)}},
		},
		Alignments: []tablefmt.Alignment{tablefmt.AlignNone, tablefmt.AlignNone},
	}

	got := tablefmt.Format(table, src)
	require.Len(t, got, 1)
	assert.Equal(t, tablefmt.PatchTable, got[0].Kind)
	assert.Equal(t, table.Range, got[0].Edit)
	assert.Equal(t, "| a   | b   |\r\n> | --- | --- |\r\n> | c   | d   |", got[0].Text)
}

func TestPatchesSkipUnresolvableTables(t *testing.T) {
	t.Parallel()

	src := lines("| a |", "| - |")

	assert.Nil(t, tablefmt.Format(nil, src))
	assert.Nil(t, tablefmt.Format(&tablefmt.Table{Range: tablefmt.Range{Start: 0, End: len(src)}}, src))

	table := scanTable(t, src, "")
	table.Range = tablefmt.NoRange
	assert.Nil(t, tablefmt.Format(table, src))

	table.Range = tablefmt.Range{Start: 0, End: len(src) + 10}
	assert.Nil(t, tablefmt.Format(table, src))
}

func TestBuildLayout(t *testing.T) {
	t.Parallel()

	src := lines(
		"| A | 你好 |",
		"| :-: | --- |",
		"| longer |",
	)

	layout := tablefmt.BuildLayout(scanTable(t, src, ""), src)
	require.NotNil(t, layout)

	want := &tablefmt.Layout{
		ColumnCount: 2,
		Widths:      []int{6, 4},
		Alignments:  []tablefmt.Alignment{tablefmt.AlignCenter, tablefmt.AlignNone},
		Values:      [][]string{{"A", "你好"}, {"longer", ""}},
	}
	if diff := cmp.Diff(want, layout); diff != "" {
		t.Errorf("BuildLayout mismatch (-want +got):\n%s", diff)
	}

	for c, w := range layout.Widths {
		assert.GreaterOrEqual(t, w, tablefmt.MinColumnWidth)
		for _, values := range layout.Values {
			assert.GreaterOrEqual(t, w, tablefmt.Width(values[c]))
		}
	}

	assert.Nil(t, tablefmt.BuildLayout(&tablefmt.Table{}, src))
	assert.Nil(t, tablefmt.BuildLayout(&tablefmt.Table{Rows: []tablefmt.Row{{}}}, src))
}

func TestDelimiterEncodesAlignment(t *testing.T) {
	t.Parallel()

	src := lines(
		"| a | b | c | d |",
		"| --- | :-- | --: | :-: |",
		"| 12345 | 12345 | 12345 | 12345 |",
	)

	got, _ := format(t, src, "")
	delimiter := strings.Split(got, "\n")[1]
	assert.Equal(t, "| ----- | :---- | ----: | :---: |", delimiter)
}
