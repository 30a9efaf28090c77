// Package watch turns filesystem events under a set of roots into debounced
// batches of changed Markdown files.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/gomdtable/internal/logging"
	"github.com/yaklabco/gomdtable/pkg/fsutil"
)

// DefaultDebounce is how long a batch waits for further events.
const DefaultDebounce = 200 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	// Roots are directories to watch recursively or single files.
	Roots []string

	// Debounce is the quiet period before a batch is delivered. It is also
	// the window in which events for paths passed to MarkWritten are
	// dropped. Zero means DefaultDebounce.
	Debounce time.Duration

	// Match selects files inside watched directories. Nil matches every
	// file. Explicit file roots always match.
	Match func(path string) bool
}

// Handler receives each settled batch of changed paths, sorted.
type Handler func(ctx context.Context, paths []string) error

// Watcher delivers debounced file changes.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	match    func(string) bool

	// files are explicit file roots; their parent directories are watched
	// without recursion.
	files map[string]bool
	// trees are directories watched together with their subdirectories.
	trees []string

	mu      sync.Mutex
	written map[string]time.Time
}

// New starts watching opts.Roots.
func New(opts Options) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		fsw:      fsw,
		debounce: opts.Debounce,
		match:    opts.Match,
		files:    make(map[string]bool),
		written:  make(map[string]time.Time),
	}
	if w.debounce <= 0 {
		w.debounce = DefaultDebounce
	}
	if w.match == nil {
		w.match = func(string) bool { return true }
	}

	for _, root := range opts.Roots {
		if err := w.addRoot(root); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}

	return w, nil
}

func (w *Watcher) addRoot(root string) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", root, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}

	if !info.IsDir() {
		w.files[abs] = true
		if err := w.fsw.Add(filepath.Dir(abs)); err != nil {
			return fmt.Errorf("watch %s: %w", root, err)
		}
		return nil
	}

	w.trees = append(w.trees, abs)
	return w.addTree(abs)
}

// addTree watches dir and every non-hidden directory beneath it.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}
		if !entry.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(entry.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// MarkWritten records that paths were just written by the caller, so the
// events those writes cause are not reported back.
func (w *Watcher) MarkWritten(paths ...string) {
	now := time.Now()

	w.mu.Lock()
	defer w.mu.Unlock()
	for _, path := range paths {
		w.written[path] = now
	}
}

func (w *Watcher) ownWrite(path string, now time.Time) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	at, ok := w.written[path]
	if !ok {
		return false
	}
	if now.Sub(at) < w.debounce {
		return true
	}
	delete(w.written, path)
	return false
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// Run delivers batches to handle until ctx is done or handle fails.
func (w *Watcher) Run(ctx context.Context, handle Handler) error {
	logger := logging.FromContext(ctx)
	logger.Debug("watching", logging.FieldPaths, w.roots(), logging.FieldDebounce, w.debounce)

	pending := make(map[string]struct{})
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			path, relevant := w.classify(event)
			if !relevant {
				continue
			}
			logger.Debug("change", logging.FieldPath, path, logging.FieldEvent, event.Op.String())
			pending[path] = struct{}{}
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", logging.FieldError, err)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			paths := make([]string, 0, len(pending))
			for path := range pending {
				paths = append(paths, path)
			}
			clear(pending)
			slices.Sort(paths)

			if err := handle(ctx, paths); err != nil {
				return err
			}
		}
	}
}

// classify decides whether event names a file worth reporting. New
// directories inside a watched tree are added as a side effect.
func (w *Watcher) classify(event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return "", false
	}

	path := filepath.Clean(event.Name)
	if fsutil.IsArtifact(path) {
		return "", false
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", false
	}

	if info.IsDir() {
		if event.Has(fsnotify.Create) && w.inTree(path) && !strings.HasPrefix(filepath.Base(path), ".") {
			_ = w.addTree(path)
		}
		return "", false
	}

	hidden := strings.HasPrefix(filepath.Base(path), ".")
	if !w.files[path] && (hidden || !w.inTree(path) || !w.match(path)) {
		return "", false
	}
	if w.ownWrite(path, time.Now()) {
		return "", false
	}
	return path, true
}

func (w *Watcher) inTree(path string) bool {
	for _, tree := range w.trees {
		rel, err := filepath.Rel(tree, path)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (w *Watcher) roots() []string {
	roots := slices.Clone(w.trees)
	for path := range w.files {
		roots = append(roots, path)
	}
	slices.Sort(roots)
	return roots
}
