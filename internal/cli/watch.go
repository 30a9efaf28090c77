package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdtable/internal/logging"
	"github.com/yaklabco/gomdtable/internal/watch"
	"github.com/yaklabco/gomdtable/pkg/reporter"
)

type watchFlags struct {
	checkFlags
	debounce time.Duration
}

func newWatchCommand(globals *globalFlags) *cobra.Command {
	flags := &watchFlags{}

	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Re-check Markdown tables whenever files change",
		Long: `Check Markdown files once, then keep watching them and re-check every
file that is written. With --fix, tables are aligned as files are saved;
the watcher ignores the writes it makes itself.

Examples:
  gomdtable watch docs/
  gomdtable watch --fix --debounce 500ms`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args, globals, flags)
		},
	}

	addFixFlags(cmd, &flags.checkFlags)
	cmd.Flags().BoolVar(&flags.fix, "fix", false, "align tables in place as files change")
	cmd.Flags().DurationVar(&flags.debounce, "debounce", watch.DefaultDebounce,
		"quiet period before changed files are re-checked")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string, globals *globalFlags, flags *watchFlags) error {
	ctx := commandContext(cmd)

	sess, err := newSession(ctx, cmd, args, globals, &flags.checkFlags)
	if err != nil {
		return err
	}
	rep, err := sess.reporter(cmd, globals, &flags.checkFlags)
	if err != nil {
		return err
	}

	initial, err := sess.run(ctx, sess.runOpts)
	if err != nil {
		return err
	}
	if _, err := rep.Report(ctx, initial); err != nil {
		return exitErr(ExitIOError, fmt.Errorf("report results: %w", err))
	}

	roots := slices.Clone(args)
	if len(roots) == 0 {
		roots = []string{"."}
	}
	for i, root := range roots {
		if !filepath.IsAbs(root) {
			roots[i] = filepath.Join(sess.workDir, root)
		}
	}

	extensions := flags.extensions
	watcher, err := watch.New(watch.Options{
		Roots:    roots,
		Debounce: flags.debounce,
		Match: func(path string) bool {
			return slices.Contains(extensions, strings.ToLower(filepath.Ext(path)))
		},
	})
	if err != nil {
		return exitErr(ExitIOError, err)
	}
	defer watcher.Close()

	sess.logger.Info("watching for changes", logging.FieldPaths, roots)

	return watcher.Run(ctx, func(ctx context.Context, paths []string) error {
		return sess.recheck(ctx, watcher, rep, paths)
	})
}

// recheck runs the changed paths and reports them. Failures are logged so
// that one bad batch does not end the watch.
func (s *session) recheck(ctx context.Context, watcher *watch.Watcher, rep reporter.Reporter, paths []string) error {
	opts := s.runOpts
	opts.Paths = paths

	result, err := s.runner.Run(ctx, opts)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		s.logger.Warn("re-check failed", logging.FieldPaths, paths, logging.FieldError, err)
		return nil
	}

	for _, outcome := range result.Files {
		if outcome.Result != nil && outcome.Result.Written {
			watcher.MarkWritten(outcome.Path)
		}
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}
	return nil
}
