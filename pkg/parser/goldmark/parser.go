// Package goldmark parses Markdown with github.com/yuin/goldmark and maps
// the result onto an mdast tree with byte ranges.
package goldmark

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/gomdtable/pkg/config"
	"github.com/yaklabco/gomdtable/pkg/mdast"
)

const (
	FlavorCommonMark = config.FlavorCommonMark
	FlavorGFM        = config.FlavorGFM
)

// Parser implements lint.Parser. It is safe for concurrent use.
type Parser struct {
	flavor config.Flavor
	md     goldmark.Markdown
}

// New returns a Parser for flavor. Only GFM enables the table extension;
// any other value parses as CommonMark.
func New(flavor config.Flavor) *Parser {
	p := &Parser{flavor: FlavorCommonMark}
	var opts []goldmark.Option
	if flavor == FlavorGFM {
		p.flavor = FlavorGFM
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	}
	p.md = goldmark.New(opts...)
	return p
}

// Flavor is the flavor the parser was built for.
func (p *Parser) Flavor() config.Flavor {
	return p.flavor
}

// Parse builds a snapshot of content. The snapshot owns a copy of the
// bytes and every node in its tree points back at it.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*mdast.FileSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	snapshot := mdast.NewFileSnapshot(path, bytes.Clone(content))
	doc := p.md.Parser().Parse(text.NewReader(snapshot.Content), parser.WithContext(parser.NewContext()))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	snapshot.Root = newMapper(snapshot).mapDocument(doc)
	mdast.SetFile(snapshot.Root, snapshot)
	return snapshot, nil
}
