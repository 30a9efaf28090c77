package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdtable/internal/configloader"
	"github.com/yaklabco/gomdtable/internal/logging"
	"github.com/yaklabco/gomdtable/pkg/config"
	"github.com/yaklabco/gomdtable/pkg/lint"
	_ "github.com/yaklabco/gomdtable/pkg/lint/rules" // Register built-in rules
	goldmarkparser "github.com/yaklabco/gomdtable/pkg/parser/goldmark"
	"github.com/yaklabco/gomdtable/pkg/reporter"
	"github.com/yaklabco/gomdtable/pkg/runner"
)

type checkFlags struct {
	fix            bool
	dryRun         bool
	noBackups      bool
	noContext      bool
	compact        bool
	followSymlinks bool
	format         string
	ruleFormat     string
	flavor         string
	jobs           int
	enable         []string
	disable        []string
	fixRules       []string
	include        []string
	exclude        []string
	extensions     []string
}

func newCheckCommand(globals *globalFlags) *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Check Markdown tables for alignment problems",
		Long: `Check the pipe tables of Markdown files.

By default, checks all .md and .markdown files in the current directory
and subdirectories. Specify paths to check specific files or directories.

Examples:
  gomdtable check                      # Check the current directory
  gomdtable check docs/ README.md      # Check a directory and a file
  gomdtable check --fix                # Align tables in place
  gomdtable check --dry-run --format diff
  gomdtable check --format json        # Machine-readable output for CI`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, globals, flags)
		},
	}

	addFixFlags(cmd, flags)
	cmd.Flags().BoolVar(&flags.fix, "fix", false, "align tables in place")

	return cmd
}

func newFmtCommand(globals *globalFlags) *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "fmt [paths...]",
		Short: "Align Markdown tables in place",
		Long: `Align the pipe tables of Markdown files in place. Equivalent to
"gomdtable check --fix".`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.fix = true
			return runCheck(cmd, args, globals, flags)
		},
	}

	addFixFlags(cmd, flags)

	return cmd
}

func addFixFlags(cmd *cobra.Command, flags *checkFlags) {
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "compute fixes without writing them")
	cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false, "disable backup creation when fixing")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, diff, sarif, summary")
	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "name",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "gfm", "Markdown flavor: gfm, commonmark")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.enable, "enable", nil, "rules to enable (ID, name or alias)")
	cmd.Flags().StringSliceVar(&flags.disable, "disable", nil, "rules to disable (ID, name or alias)")
	cmd.Flags().StringSliceVar(&flags.fixRules, "fix-rules", nil, "limit fixing to these rules")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "minified JSON output")
	cmd.Flags().StringSliceVar(&flags.include, "include", nil, "only process paths matching these globs")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "skip paths matching these globs")
	cmd.Flags().StringSliceVar(&flags.extensions, "extensions", runner.DefaultExtensions(),
		"file extensions treated as Markdown")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "descend into symlinked directories")
}

// session is a loaded configuration plus the machinery to run it.
type session struct {
	cfg     *config.Config
	workDir string
	runner  *runner.Runner
	runOpts runner.Options
	logger  *log.Logger
}

func runCheck(cmd *cobra.Command, args []string, globals *globalFlags, flags *checkFlags) error {
	ctx := commandContext(cmd)

	sess, err := newSession(ctx, cmd, args, globals, flags)
	if err != nil {
		return err
	}

	result, err := sess.run(ctx, sess.runOpts)
	if err != nil {
		return err
	}

	rep, err := sess.reporter(cmd, globals, flags)
	if err != nil {
		return err
	}
	if _, err := rep.Report(ctx, result); err != nil {
		return exitErr(ExitIOError, fmt.Errorf("report results: %w", err))
	}

	if code := ExitCodeFromResult(result); code != ExitSuccess {
		return exitErr(code, ErrIssuesFound)
	}
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// newSession validates flags, loads configuration and builds the runner.
func newSession(
	ctx context.Context, cmd *cobra.Command, args []string, globals *globalFlags, flags *checkFlags,
) (*session, error) {
	cliCfg, err := cliConfig(cmd, flags)
	if err != nil {
		return nil, exitErr(ExitInvalidUsage, err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, exitErr(ExitIOError, fmt.Errorf("get working directory: %w", err))
	}

	logger := logging.FromContext(ctx)

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: globals.configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, exitErr(ExitConfigError, fmt.Errorf("load configuration: %w", err))
	}
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldFiles, loadResult.LoadedFrom,
		logging.FieldFlavor, cfg.Flavor,
		logging.FieldFix, cfg.Fix,
		logging.FieldDryRun, cfg.DryRun,
		logging.FieldJobs, cfg.Jobs,
	)

	engine := lint.NewEngine(goldmarkparser.New(cfg.Flavor), lint.DefaultRegistry)

	return &session{
		cfg:     cfg,
		workDir: workDir,
		runner:  runner.New(lint.NewPipeline(engine)),
		runOpts: runner.Options{
			Paths:          args,
			WorkingDir:     workDir,
			Extensions:     flags.extensions,
			IncludeGlobs:   flags.include,
			ExcludeGlobs:   append(append([]string(nil), cfg.Ignore...), flags.exclude...),
			FollowSymlinks: flags.followSymlinks,
			Jobs:           cfg.Jobs,
			Config:         cfg,
		},
		logger: logger,
	}, nil
}

// cliConfig turns explicitly set flags into the highest-precedence config
// layer. Unset flags stay zero so lower layers show through.
func cliConfig(cmd *cobra.Command, flags *checkFlags) (*config.Config, error) {
	changed := cmd.Flags().Changed
	cfg := &config.Config{
		Fix:       flags.fix || flags.dryRun,
		DryRun:    flags.dryRun,
		NoBackups: flags.noBackups,
	}

	if changed("format") {
		format, err := reporter.ParseFormat(flags.format)
		if err != nil {
			return nil, err
		}
		cfg.Format = format
	}
	if changed("rule-format") {
		cfg.RuleFormat = config.RuleFormat(flags.ruleFormat)
		if !cfg.RuleFormat.IsValid() {
			return nil, fmt.Errorf("invalid rule format %q: must be name, id, or combined", flags.ruleFormat)
		}
	}
	if changed("flavor") {
		cfg.Flavor = config.Flavor(flags.flavor)
		if !cfg.Flavor.IsValid() {
			return nil, fmt.Errorf("invalid flavor %q: must be gfm or commonmark", flags.flavor)
		}
	}
	if changed("jobs") {
		if flags.jobs < 0 {
			return nil, fmt.Errorf("invalid jobs %d: must not be negative", flags.jobs)
		}
		cfg.Jobs = flags.jobs
	}
	if changed("enable") {
		cfg.EnableRules = flags.enable
	}
	if changed("disable") {
		cfg.DisableRules = flags.disable
	}
	if changed("fix-rules") {
		cfg.FixRules = flags.fixRules
	}

	return cfg, nil
}

func (s *session) run(ctx context.Context, opts runner.Options) (*runner.Result, error) {
	s.logger.Debug("starting run",
		logging.FieldPaths, opts.Paths,
		logging.FieldWorkingDir, opts.WorkingDir,
	)

	result, err := s.runner.Run(ctx, opts)
	if err != nil {
		return nil, exitErr(runErrorCode(err), err)
	}

	s.logger.Debug("run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
		logging.FieldFilesModified, result.Stats.FilesModified,
	)
	return result, nil
}

func runErrorCode(err error) int {
	switch {
	case errors.Is(err, runner.ErrInvalidGlob):
		return ExitInvalidUsage
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

func (s *session) reporter(cmd *cobra.Command, globals *globalFlags, flags *checkFlags) (reporter.Reporter, error) {
	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      reporter.Format(s.cfg.Format),
		Color:       globals.color,
		ShowContext: !flags.noContext,
		ShowSummary: true,
		Compact:     flags.compact,
		RuleFormat:  s.cfg.RuleFormat,
		WorkingDir:  s.workDir,
		Registry:    lint.DefaultRegistry,
		ToolVersion: globals.version,
	})
	if err != nil {
		return nil, exitErr(ExitInvalidUsage, fmt.Errorf("create reporter: %w", err))
	}
	return rep, nil
}
