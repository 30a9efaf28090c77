package runner

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/gomdtable/internal/logging"
	"github.com/yaklabco/gomdtable/pkg/lint"
)

// Runner fans files out to a lint.Pipeline.
type Runner struct {
	Pipeline *lint.Pipeline
}

// New creates a Runner around pipeline.
func New(pipeline *lint.Pipeline) *Runner {
	return &Runner{Pipeline: pipeline}
}

// Run discovers files and processes them with at most opts.Jobs in flight.
// A file that fails is recorded in its outcome and does not stop the
// others. Outcomes are returned in discovery order. When ctx is cancelled
// Run returns the outcomes gathered so far along with the context error.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	pipelineOpts := lint.PipelineOptionsFromConfig(opts.Config)
	logger := logging.FromContext(ctx)
	logger.Debug("processing files", logging.FieldCount, len(files), logging.FieldJobs, jobs)

	outcomes := make([]*FileOutcome, len(files))

	var group errgroup.Group
	group.SetLimit(jobs)

	for i, path := range files {
		if ctx.Err() != nil {
			break
		}
		group.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			outcome := &FileOutcome{Path: path}
			outcome.Result, outcome.Error = r.Pipeline.ProcessFile(ctx, path, opts.Config, pipelineOpts)
			if outcome.Error != nil {
				outcome.Result = nil
				logger.Debug("file failed", logging.FieldPath, path, logging.FieldError, outcome.Error)
			}
			outcomes[i] = outcome
			return nil
		})
	}
	_ = group.Wait()

	for _, outcome := range outcomes {
		if outcome != nil {
			result.accumulate(*outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}
