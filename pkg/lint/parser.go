package lint

import (
	"context"

	"github.com/yaklabco/gomdtable/pkg/mdast"
)

// Parser turns Markdown bytes into a snapshot. parser/goldmark is the
// production implementation.
//
// Parse must be deterministic and free of side effects. A successful
// result has the given path and a copy of content, a document root, and
// every node's File set to the snapshot. Known node ranges stay inside the
// content.
type Parser interface {
	Parse(ctx context.Context, path string, content []byte) (*mdast.FileSnapshot, error)
}
