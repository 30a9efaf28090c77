package cli

import (
	"errors"
	"strconv"

	"github.com/yaklabco/gomdtable/pkg/config"
	"github.com/yaklabco/gomdtable/pkg/runner"
)

// Exit codes for gomdtable.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitLintErrors indicates error-severity issues remain.
	ExitLintErrors = 1

	// ExitLintWarnings indicates only warning or info issues remain.
	ExitLintWarnings = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrIssuesFound signals a completed run that left issues behind. It is
// never printed.
var ErrIssuesFound = errors.New("issues found")

// ExitError carries the process exit code for a failed command.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return "exit status " + strconv.Itoa(e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func exitErr(code int, err error) error {
	return &ExitError{Code: code, Err: err}
}

// ExitCode maps an Execute error to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exit *ExitError
	if errors.As(err, &exit) {
		return exit.Code
	}
	return ExitInternalError
}

// ExitCodeFromResult picks the exit code for a finished run. File errors
// win over lint results. Issues whose fix was written to disk no longer
// count.
func ExitCodeFromResult(result *runner.Result) int {
	if result == nil {
		return ExitSuccess
	}
	if result.Stats.FilesErrored > 0 {
		return ExitIOError
	}

	remaining := remainingBySeverity(result)
	switch {
	case remaining[config.SeverityError] > 0:
		return ExitLintErrors
	case remaining[config.SeverityWarning] > 0 || remaining[config.SeverityInfo] > 0:
		return ExitLintWarnings
	default:
		return ExitSuccess
	}
}

func remainingBySeverity(result *runner.Result) map[config.Severity]int {
	counts := make(map[config.Severity]int)
	for _, file := range result.Files {
		pr := file.Result
		if pr == nil || pr.FileResult == nil {
			continue
		}
		for _, diag := range pr.Diagnostics {
			if pr.Written && diag.HasFix() {
				continue
			}
			severity := diag.Severity
			if severity == "" {
				severity = config.SeverityWarning
			}
			counts[severity]++
		}
	}
	return counts
}
