package lint

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yaklabco/gomdtable/internal/logging"
	"github.com/yaklabco/gomdtable/pkg/config"
	"github.com/yaklabco/gomdtable/pkg/fix"
	"github.com/yaklabco/gomdtable/pkg/fsutil"
)

// DefaultMaxFixPasses bounds the fix loop. Table patches converge in one
// pass; a second pass only happens when conflicting edits were skipped.
const DefaultMaxFixPasses = 10

// Errors returned by Pipeline, wrapping the underlying cause.
var (
	ErrFileNotFound     = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrParseFailure     = errors.New("parse failure")
	ErrWriteFailure     = errors.New("write failure")
)

// PipelineResult describes what happened to one file. The embedded
// FileResult is the first lint pass, so it reports the content as read.
type PipelineResult struct {
	*FileResult

	Path         string
	OriginalInfo *fsutil.FileInfo // nil for in-memory content

	// Modified means fixing changed the content; ModifiedContent holds it.
	Modified        bool
	ModifiedContent []byte

	// Diff is set only for dry runs.
	Diff *fix.Diff

	Skipped    bool
	SkipReason string

	BackupCreated bool
	Written       bool

	FixPasses         int // passes that changed the content
	TotalEditsApplied int
}

// Summary is a short status phrase for the file.
func (pr *PipelineResult) Summary() string {
	switch {
	case pr.Skipped:
		return "skipped: " + pr.SkipReason
	case pr.Written && pr.BackupCreated:
		return "fixed (backup created)"
	case pr.Written:
		return "fixed"
	case pr.Modified:
		return "changes pending"
	case pr.FileResult != nil && pr.HasIssues():
		return "issues found"
	default:
		return "ok"
	}
}

// PipelineOptions controls one ProcessFile or ProcessContent call.
type PipelineOptions struct {
	Fix    bool
	DryRun bool
	Backup fsutil.BackupConfig

	// StrictRaceDetection compares content hashes before writing instead
	// of only size and modification time.
	StrictRaceDetection bool

	// ReParseAfterFix drops a fix whose output no longer parses.
	ReParseAfterFix bool

	// MaxFixPasses caps the fix loop; zero means DefaultMaxFixPasses.
	MaxFixPasses int
}

// DefaultPipelineOptions is report-only with strict race detection.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		Backup:              fsutil.DefaultBackupConfig(),
		StrictRaceDetection: true,
	}
}

// Pipeline reads, lints, fixes and writes single files.
type Pipeline struct {
	Engine *Engine
}

// NewPipeline creates a Pipeline.
func NewPipeline(engine *Engine) *Pipeline {
	return &Pipeline{Engine: engine}
}

// ProcessFile lints path and, when fixing outside a dry run, atomically
// writes the result back. A file that changed on disk since it was read is
// left alone and reported as skipped.
func (p *Pipeline) ProcessFile(
	ctx context.Context,
	path string,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	original, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	result, err := p.ProcessContent(ctx, path, original, cfg, opts)
	if err != nil {
		return nil, err
	}
	result.OriginalInfo = info

	if !result.Modified || result.Skipped || opts.DryRun {
		return result, nil
	}

	if err := p.commit(ctx, result, info, opts); err != nil {
		return nil, err
	}
	return result, nil
}

// commit writes result.ModifiedContent over the file described by info.
func (p *Pipeline) commit(ctx context.Context, result *PipelineResult, info *fsutil.FileInfo, opts PipelineOptions) error {
	logger := logging.FromContext(ctx)
	path := result.Path

	changed, err := p.checkModified(ctx, info, opts.StrictRaceDetection)
	if err != nil {
		return err
	}
	if changed {
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		logger.Warn("skipping file changed on disk", logging.FieldPath, path)
		return nil
	}

	if opts.Backup.Enabled {
		created, err := fsutil.CreateBackup(ctx, path, opts.Backup)
		if err != nil {
			return fmt.Errorf("create backup: %w", err)
		}
		result.BackupCreated = created
	}

	if err := fsutil.WriteAtomic(ctx, path, result.ModifiedContent, info.Mode); err != nil {
		if result.BackupCreated {
			// The original is untouched.
			_, _ = fsutil.RemoveBackup(path, opts.Backup.Mode)
		}
		return fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true

	logger.Debug("file fixed",
		logging.FieldPath, path,
		logging.FieldPasses, result.FixPasses,
		logging.FieldEdits, result.TotalEditsApplied,
	)
	return nil
}

// ProcessContent is ProcessFile without any file I/O. Dry runs attach a
// diff of the fixed content.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	original []byte,
	cfg *config.Config,
	opts PipelineOptions,
) (*PipelineResult, error) {
	result := &PipelineResult{Path: path}

	content, err := p.converge(ctx, path, original, cfg, opts, result)
	if err != nil {
		return nil, err
	}

	if !result.Modified {
		return result, nil
	}
	result.ModifiedContent = content

	if opts.ReParseAfterFix {
		if _, err := p.Engine.Parser.Parse(ctx, path, content); err != nil {
			result.Skipped = true
			result.SkipReason = fmt.Sprintf("re-parse failed: %v", err)
			result.Modified = false
			result.ModifiedContent = nil
			return result, nil
		}
	}

	if opts.DryRun {
		result.Diff = fix.GenerateDiff(path, original, content)
	}

	return result, nil
}

// converge lints content and, in fix mode, applies the accepted edits until
// no edits remain, the content stops changing, or the pass limit is reached.
// Diagnostics from the first pass are kept so reports describe the input.
func (p *Pipeline) converge(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
	opts PipelineOptions,
	result *PipelineResult,
) ([]byte, error) {
	maxPasses := opts.MaxFixPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxFixPasses
	}

	var first *FileResult
	for range maxPasses {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("processing cancelled: %w", err)
		}

		fileResult, err := p.Engine.LintFile(ctx, path, content, cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParseFailure, err)
		}
		if first == nil {
			first = fileResult
		}
		result.FileResult = first

		if !opts.Fix || len(fileResult.Edits) == 0 {
			break
		}

		next := fix.ApplyEdits(content, fileResult.Edits)
		if bytes.Equal(next, content) {
			break
		}

		content = next
		result.FixPasses++
		result.TotalEditsApplied += len(fileResult.Edits)
		result.Modified = true
	}

	return content, nil
}

// checkModified reports whether the file changed since info was taken.
func (p *Pipeline) checkModified(ctx context.Context, info *fsutil.FileInfo, strict bool) (bool, error) {
	check := fsutil.CheckModifiedQuick
	if strict {
		check = fsutil.CheckModified
	}

	modified, err := check(ctx, info)
	if err != nil {
		return false, fmt.Errorf("check modified: %w", err)
	}
	return modified, nil
}

func categorizeError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fsutil.ErrNotFound), errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	case errors.Is(err, fsutil.ErrPermissionDenied), errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	default:
		return err
	}
}

// IsPipelineError reports whether err wraps one of the pipeline errors.
func IsPipelineError(err error) bool {
	for _, target := range []error{ErrFileNotFound, ErrPermissionDenied, ErrParseFailure, ErrWriteFailure} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// BackupConfigFromConfig maps the backups section and --no-backups.
func BackupConfigFromConfig(cfg *config.Config) fsutil.BackupConfig {
	if cfg == nil {
		return fsutil.DefaultBackupConfig()
	}
	return fsutil.BackupConfig{
		Enabled: cfg.Backups.IsEnabled() && !cfg.NoBackups,
		Mode:    fsutil.BackupMode(cfg.Backups.Mode),
	}
}

// PipelineOptionsFromConfig derives options for a CLI run. Re-parsing
// after a fix is always on.
func PipelineOptionsFromConfig(cfg *config.Config) PipelineOptions {
	if cfg == nil {
		return DefaultPipelineOptions()
	}
	return PipelineOptions{
		Fix:                 cfg.Fix,
		DryRun:              cfg.DryRun,
		Backup:              BackupConfigFromConfig(cfg),
		StrictRaceDetection: true,
		ReParseAfterFix:     true,
	}
}
