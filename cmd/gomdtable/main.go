// Command gomdtable aligns GitHub Flavored Markdown tables.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/yaklabco/gomdtable/internal/cli"
	"github.com/yaklabco/gomdtable/internal/logging"
	_ "github.com/yaklabco/gomdtable/pkg/lint/rules" // registers built-in rules
)

// Set with -ldflags "-X main.version=...".
//
//nolint:gochecknoglobals // ldflags targets
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.NewRootCommand(cli.BuildInfo{Version: version, Commit: commit, Date: date}).ExecuteContext(ctx)
	stop()

	if err != nil && !errors.Is(err, cli.ErrIssuesFound) {
		logging.Default().Error("gomdtable failed", logging.FieldError, err)
	}
	os.Exit(cli.ExitCode(err))
}
