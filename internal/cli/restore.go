package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdtable/internal/logging"
	"github.com/yaklabco/gomdtable/pkg/fsutil"
	"github.com/yaklabco/gomdtable/pkg/runner"
)

type restoreFlags struct {
	extensions []string
	keep       bool
}

func newRestoreCommand() *cobra.Command {
	flags := &restoreFlags{}

	cmd := &cobra.Command{
		Use:   "restore [paths...]",
		Short: "Undo fixes by restoring sidecar backups",
		Long: `Put back the sidecar backups (*.gomdtable.bak) written before files were
fixed, then delete them. Files without a backup are left alone.

Examples:
  gomdtable restore                    # Restore every backup below .
  gomdtable restore docs/guide.md`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRestore(cmd, args, flags)
		},
	}

	cmd.Flags().StringSliceVar(&flags.extensions, "extensions", runner.DefaultExtensions(),
		"file extensions treated as Markdown")
	cmd.Flags().BoolVar(&flags.keep, "keep", false, "keep backup files after restoring")

	return cmd
}

func runRestore(cmd *cobra.Command, args []string, flags *restoreFlags) error {
	ctx := commandContext(cmd)
	logger := logging.NewInteractive(cmd.OutOrStdout())

	files, err := runner.Discover(ctx, runner.Options{Paths: args, Extensions: flags.extensions})
	if err != nil {
		return exitErr(runErrorCode(err), err)
	}

	restored := 0
	for _, path := range files {
		ok, err := fsutil.RestoreBackup(ctx, path, fsutil.BackupModeSidecar)
		if err != nil {
			return exitErr(ExitIOError, fmt.Errorf("restore %s: %w", path, err))
		}
		if !ok {
			continue
		}
		restored++
		logger.Info("restored", logging.FieldPath, path)

		if flags.keep {
			continue
		}
		if _, err := fsutil.RemoveBackup(path, fsutil.BackupModeSidecar); err != nil {
			return exitErr(ExitIOError, fmt.Errorf("remove backup of %s: %w", path, err))
		}
	}

	logger.Info("restore finished", logging.FieldCount, restored)
	return nil
}
