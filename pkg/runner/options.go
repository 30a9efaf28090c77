// Package runner checks and fixes the tables of many Markdown files
// concurrently.
package runner

import "github.com/yaklabco/gomdtable/pkg/config"

// Options controls discovery and processing of a run.
type Options struct {
	// Paths are files or directories to process. Empty means ".".
	Paths []string

	// WorkingDir resolves relative Paths and anchors glob matching.
	// Empty means the process working directory.
	WorkingDir string

	// Extensions are the lowercase, dot-prefixed suffixes treated as
	// Markdown. Empty means DefaultExtensions.
	Extensions []string

	// IncludeGlobs restrict discovery to matching paths when non-empty.
	IncludeGlobs []string

	// ExcludeGlobs skip matching files and prune matching directories.
	ExcludeGlobs []string

	// FollowSymlinks traverses symlinked directories.
	FollowSymlinks bool

	// Jobs bounds concurrent files. Zero or less means runtime.NumCPU.
	Jobs int

	Config *config.Config
}

// DefaultExtensions returns the Markdown extensions used when none are set.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

func (o Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) paths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
