package reporter

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/yaklabco/gomdtable/internal/ui/pretty"
	"github.com/yaklabco/gomdtable/pkg/fix"
	"github.com/yaklabco/gomdtable/pkg/runner"
)

// DiffReporter prints pending fixes as git-style unified diffs. Diffs
// exist only for dry runs.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewDiffReporter creates a DiffReporter.
func NewDiffReporter(opts Options) *DiffReporter {
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		out:    opts.Writer,
	}
}

// Report implements Reporter. The count is the number of files with a diff.
func (r *DiffReporter) Report(ctx context.Context, result *runner.Result) (int, error) {
	if result == nil {
		return 0, nil
	}

	var files, added, removed int
	for _, file := range result.Files {
		if err := ctx.Err(); err != nil {
			return files, err
		}

		path := displayPath(file.Path, r.opts.WorkingDir)
		if file.Error != nil {
			fmt.Fprintf(r.out, "%s: %s\n", r.styles.FilePath.Render(path),
				r.styles.Error.Render("error: "+file.Error.Error()))
			continue
		}
		if file.Result == nil || !file.Result.Diff.HasChanges() {
			continue
		}

		d := file.Result.Diff
		r.writeDiff(path, d)
		files++
		added += d.Additions
		removed += d.Deletions
	}

	if files > 0 && r.opts.ShowSummary {
		r.writeSummary(files, added, removed)
	}
	return files, nil
}

func (r *DiffReporter) writeDiff(path string, d *fix.Diff) {
	s := r.styles
	fmt.Fprintln(r.out, s.DiffHeader.Render("diff --git a/"+path+" b/"+path))
	fmt.Fprintln(r.out, s.DiffRemove.Render("--- a/"+path))
	fmt.Fprintln(r.out, s.DiffAdd.Render("+++ b/"+path))

	for _, h := range d.Hunks {
		fmt.Fprintln(r.out, s.DiffHunk.Render(h.Header()))
		for _, line := range h.Lines {
			style := s.DiffContext
			switch line.Kind {
			case fix.DiffLineAdd:
				style = s.DiffAdd
			case fix.DiffLineRemove:
				style = s.DiffRemove
			case fix.DiffLineContext:
			}
			fmt.Fprintln(r.out, style.Render(line.Kind.Prefix()+line.Content))
		}
	}
	fmt.Fprintln(r.out)
}

// writeSummary prints a git-style "N files changed" line.
func (r *DiffReporter) writeSummary(files, added, removed int) {
	parts := []string{plural(files, "file", "files") + " changed"}
	if added > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(plural(added, "insertion", "insertions")+"(+)"))
	}
	if removed > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(plural(removed, "deletion", "deletions")+"(-)"))
	}
	fmt.Fprintln(r.out, strings.Join(parts, ", "))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
