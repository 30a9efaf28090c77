// Package cli provides the Cobra command structure for gomdtable.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdtable/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	debug      bool
	configPath string
	color      string

	// version is reported by machine-readable formats.
	version string
}

// NewRootCommand creates the root gomdtable command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	globals := &globalFlags{version: info.resolved().Version}

	rootCmd := &cobra.Command{
		Use:   "gomdtable",
		Short: "Align GitHub Flavored Markdown tables with minimal edits",
		Long: `gomdtable checks and fixes the layout of GitHub Flavored Markdown pipe
tables. Every column is padded to a common width measured in terminal
cells, delimiter rows are rebuilt to match, and fixes touch only the bytes
that actually change, so lists, blockquotes and CRLF files survive intact.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := "info"
			if globals.debug {
				level = "debug"
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(logging.WithLogger(ctx, logging.New(cmd.ErrOrStderr(), level)))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&globals.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&globals.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&globals.color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return exitErr(ExitInvalidUsage, err)
	})

	rootCmd.AddCommand(newCheckCommand(globals))
	rootCmd.AddCommand(newFmtCommand(globals))
	rootCmd.AddCommand(newWatchCommand(globals))
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newRestoreCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	applyHelp(rootCmd, &globals.color)

	return rootCmd
}
