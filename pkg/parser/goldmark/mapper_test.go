package goldmark

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/gomdtable/pkg/mdast"
)

func mapGFM(t *testing.T, content string) *mdast.Node {
	t.Helper()

	snapshot := mdast.NewFileSnapshot("test.md", []byte(content))
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	gmDoc := md.Parser().Parse(text.NewReader(snapshot.Content), parser.WithContext(parser.NewContext()))

	doc := newMapper(snapshot).mapDocument(gmDoc)
	mdast.SetFile(doc, snapshot)
	return doc
}

// tableShape renders each row of a mapped table as the text of its cells,
// with "<empty>" for cells without content.
func tableShape(table *mdast.Node) [][]string {
	var shape [][]string
	for _, row := range table.Children() {
		var cells []string
		for _, cell := range row.Children() {
			if cell.FirstChild == nil {
				cells = append(cells, "<empty>")
				continue
			}
			cells = append(cells, string(cell.FirstChild.Text()))
		}
		shape = append(shape, cells)
	}
	return shape
}

func onlyTable(t *testing.T, doc *mdast.Node) *mdast.Node {
	t.Helper()

	tables := mdast.FindByKind(doc, mdast.NodeTable)
	if len(tables) != 1 {
		t.Fatalf("found %d tables, want 1", len(tables))
	}
	return tables[0]
}

func TestMapper_Blocks(t *testing.T) {
	doc := mapGFM(t, "## Title\n\n1. one\n2. two\n\n```go\nx\n```\n\n> quote\n\n---\n")

	want := []mdast.NodeKind{
		mdast.NodeHeading,
		mdast.NodeList,
		mdast.NodeCodeBlock,
		mdast.NodeBlockquote,
		mdast.NodeThematicBreak,
	}
	var got []mdast.NodeKind
	for _, child := range doc.Children() {
		got = append(got, child.Kind)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("block kinds mismatch (-want +got):\n%s", diff)
	}

	children := doc.Children()
	if level := children[0].Block.HeadingLevel; level != 2 {
		t.Errorf("heading level = %d, want 2", level)
	}
	if list := children[1].Block.List; !list.Ordered || list.StartNumber != 1 {
		t.Errorf("list attrs = %+v", list)
	}
	if info := children[2].Block.CodeBlock.Info; info != "go" {
		t.Errorf("code block info = %q, want %q", info, "go")
	}
	if got := len(mdast.FindByKind(doc, mdast.NodeListItem)); got != 2 {
		t.Errorf("list items = %d, want 2", got)
	}
}

func TestMapper_Table(t *testing.T) {
	content := "| A | B |\n| :- | -: |\n| 1 | 2 | 3 |\n| x |\n"
	table := onlyTable(t, mapGFM(t, content))

	if table.Range != (mdast.SourceRange{StartOffset: 0, EndOffset: 41}) {
		t.Errorf("table range = %+v", table.Range)
	}

	wantAlign := []mdast.Alignment{mdast.AlignLeft, mdast.AlignRight}
	if diff := cmp.Diff(wantAlign, table.Block.Table.Alignments); diff != "" {
		t.Errorf("alignments mismatch (-want +got):\n%s", diff)
	}

	wantShape := [][]string{
		{"A", "B"},
		{"1", "2", "3"},
		{"x"},
	}
	if diff := cmp.Diff(wantShape, tableShape(table)); diff != "" {
		t.Errorf("table shape mismatch (-want +got):\n%s", diff)
	}

	rows := table.Children()
	if !rows[0].Block.Header || rows[1].Block.Header {
		t.Error("only the first row should be the header")
	}
	if got := string(rows[2].Text()); got != "| x |" {
		t.Errorf("last row text = %q", got)
	}
	if got := string(rows[1].LastChild.Text()); got != "| 3 |" {
		t.Errorf("extra cell text = %q", got)
	}
}

func TestMapper_TableInBlockquote(t *testing.T) {
	content := "> | Name | Tool |\n> | --- | --- |\n> | antfu | eslint |\n"
	table := onlyTable(t, mapGFM(t, content))

	for _, row := range table.Children() {
		text := string(row.Text())
		if text[0] != '|' || text[len(text)-1] != '|' {
			t.Errorf("row text %q should exclude the quote marker", text)
		}
	}
	if table.Range.StartOffset != 2 {
		t.Errorf("table starts at %d, want 2", table.Range.StartOffset)
	}

	wantShape := [][]string{{"Name", "Tool"}, {"antfu", "eslint"}}
	if diff := cmp.Diff(wantShape, tableShape(table)); diff != "" {
		t.Errorf("table shape mismatch (-want +got):\n%s", diff)
	}
}

func TestMapper_TableWithoutOuterPipes(t *testing.T) {
	content := "Pilot|Airport|Hours\n--|:--:|--:\nJohn Doe|SKG|1338\n"
	table := onlyTable(t, mapGFM(t, content))

	wantShape := [][]string{
		{"Pilot", "Airport", "Hours"},
		{"John Doe", "SKG", "1338"},
	}
	if diff := cmp.Diff(wantShape, tableShape(table)); diff != "" {
		t.Errorf("table shape mismatch (-want +got):\n%s", diff)
	}

	wantAlign := []mdast.Alignment{mdast.AlignNone, mdast.AlignCenter, mdast.AlignRight}
	if diff := cmp.Diff(wantAlign, table.Block.Table.Alignments); diff != "" {
		t.Errorf("alignments mismatch (-want +got):\n%s", diff)
	}
}

func TestMapper_TableAfterParagraph(t *testing.T) {
	content := "intro line\n| h | i |\n| - | - |\n|  | z |\n"
	doc := mapGFM(t, content)
	table := onlyTable(t, doc)

	if got := string(table.FirstChild.Text()); got != "| h | i |" {
		t.Errorf("header text = %q", got)
	}

	wantShape := [][]string{{"h", "i"}, {"<empty>", "z"}}
	if diff := cmp.Diff(wantShape, tableShape(table)); diff != "" {
		t.Errorf("table shape mismatch (-want +got):\n%s", diff)
	}

	if got := len(mdast.FindByKind(doc, mdast.NodeParagraph)); got != 1 {
		t.Errorf("paragraphs = %d, want 1", got)
	}
}

func TestMapper_TableHeaderOnlyCRLF(t *testing.T) {
	content := "| a | b |\r\n|---|---|\r\n"
	table := onlyTable(t, mapGFM(t, content))

	if got := string(table.Text()); got != "| a | b |\r\n|---|---|" {
		t.Errorf("table text = %q", got)
	}
	if table.ChildCount() != 1 {
		t.Errorf("rows = %d, want 1", table.ChildCount())
	}
}
