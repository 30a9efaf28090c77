package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdtable/internal/logging"
	"github.com/yaklabco/gomdtable/pkg/config"
	"github.com/yaklabco/gomdtable/pkg/fsutil"
	"github.com/yaklabco/gomdtable/pkg/lint"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a gomdtable configuration file",
		Long: `Create a commented .gomdtable.yml in the current directory listing every
rule with its defaults. Edit it to disable rules, change severities or
ignore paths.

Examples:
  gomdtable init                       Create .gomdtable.yml
  gomdtable init --force               Replace an existing file
  gomdtable init --output docs/.gomdtable.yml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, lint.DefaultRegistry, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", config.TemplateFileName, "output file path")

	return cmd
}

func runInit(cmd *cobra.Command, registry *lint.Registry, flags *initFlags) error {
	logger := logging.NewInteractive(cmd.OutOrStdout())

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return exitErr(ExitIOError, fmt.Errorf("resolve path: %w", err))
	}

	_, statErr := os.Stat(absPath)
	switch {
	case statErr == nil && !flags.force:
		return exitErr(ExitInvalidUsage,
			fmt.Errorf("file %q already exists; use --force to overwrite", flags.output))
	case statErr == nil:
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	case !errors.Is(statErr, fs.ErrNotExist):
		return exitErr(ExitIOError, fmt.Errorf("stat %s: %w", flags.output, statErr))
	}

	content := config.GenerateTemplate(templateRules(registry))

	if err := fsutil.WriteAtomic(commandContext(cmd), absPath, content, fsutil.DefaultFileMode); err != nil {
		return exitErr(ExitIOError, fmt.Errorf("write %s: %w", flags.output, err))
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	logger.Info("run 'gomdtable rules' to see all available rules")

	return nil
}

func templateRules(registry *lint.Registry) []config.RuleInfo {
	rules := registry.Rules()
	infos := make([]config.RuleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, config.RuleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Description: rule.Description(),
			Aliases:     registry.Aliases(rule.ID()),
			Fixable:     rule.CanFix(),
		})
	}
	return infos
}
