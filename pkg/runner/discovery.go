package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/gomdtable/pkg/fsutil"
)

// ErrInvalidGlob is returned when an include or exclude pattern does not
// compile.
var ErrInvalidGlob = errors.New("invalid glob pattern")

// matcher holds compiled include and exclude globs. Patterns match
// slash-separated paths relative to the working directory; "**" crosses
// directories, "*" does not. A pattern without a slash also matches the
// base name alone.
type matcher struct {
	workDir    string
	extensions []string
	include    []glob.Glob
	exclude    []glob.Glob
}

func newMatcher(workDir string, opts Options) (*matcher, error) {
	include, err := compileGlobs(opts.IncludeGlobs)
	if err != nil {
		return nil, err
	}
	exclude, err := compileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	extensions := make([]string, 0, len(opts.extensions()))
	for _, ext := range opts.extensions() {
		extensions = append(extensions, strings.ToLower(ext))
	}

	return &matcher{workDir: workDir, extensions: extensions, include: include, exclude: exclude}, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	compiled := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(filepath.ToSlash(pattern), '/')
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidGlob, pattern, err)
		}
		compiled = append(compiled, g)
	}
	return compiled, nil
}

func (m *matcher) rel(path string) string {
	rel, err := filepath.Rel(m.workDir, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}

func anyMatch(globs []glob.Glob, rel string) bool {
	base := rel[strings.LastIndex(rel, "/")+1:]
	for _, g := range globs {
		if g.Match(rel) || g.Match(base) {
			return true
		}
	}
	return false
}

// skipDir reports whether a directory is pruned. "dir/**" prunes dir.
func (m *matcher) skipDir(path string) bool {
	rel := m.rel(path)
	return anyMatch(m.exclude, rel) || anyMatch(m.exclude, rel+"/")
}

func (m *matcher) matchFile(path string) bool {
	if fsutil.IsArtifact(path) {
		return false
	}
	if !slices.Contains(m.extensions, strings.ToLower(filepath.Ext(path))) {
		return false
	}

	rel := m.rel(path)
	if anyMatch(m.exclude, rel) {
		return false
	}
	return len(m.include) == 0 || anyMatch(m.include, rel)
}

// Discover expands opts.Paths into Markdown files. Explicit files are kept
// when they pass the extension and glob filters; directories are walked,
// skipping hidden entries such as .git. The result holds absolute paths,
// sorted and free of duplicates.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	m, err := newMatcher(workDir, opts)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, input := range opts.paths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		path := input
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, path)
		}
		path = filepath.Clean(path)

		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if !info.IsDir() {
			if m.matchFile(path) {
				files = append(files, path)
			}
			continue
		}

		found, err := m.walk(ctx, path, opts.FollowSymlinks)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}

	slices.Sort(files)
	return slices.Compact(files), nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		return os.Getwd()
	}
	return filepath.Abs(workDir)
}

func (m *matcher) walk(ctx context.Context, root string, followSymlinks bool) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		hidden := path != root && strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if hidden || m.skipDir(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := filepath.EvalSymlinks(path)
			if err != nil {
				return nil //nolint:nilerr // broken symlinks are skipped
			}
			info, err := os.Stat(target)
			if err != nil {
				return nil //nolint:nilerr // unreadable targets are skipped
			}
			if info.IsDir() {
				if !followSymlinks || m.skipDir(path) {
					return nil
				}
				// WalkDir does not descend into symlinks, so walk the target.
				sub, err := m.walk(ctx, target, followSymlinks)
				if err != nil {
					return err
				}
				files = append(files, sub...)
				return nil
			}
		}

		if m.matchFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}

	return files, nil
}
