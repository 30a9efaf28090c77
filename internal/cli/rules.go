package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdtable/internal/logging"
	"github.com/yaklabco/gomdtable/pkg/config"
	"github.com/yaklabco/gomdtable/pkg/lint"
)

type rulesFlags struct {
	ruleFormat string
	format     string
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Severity    string   `json:"severity"`
	Fixable     bool     `json:"fixable"`
	Aliases     []string `json:"aliases,omitempty"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available rules",
		Long: `List the table rules with their IDs, names, aliases, default severity,
and whether they can fix what they report. Any of the ID, name or alias
can be used in configuration and with --enable, --disable and --fix-rules.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRules(cmd.OutOrStdout(), lint.DefaultRegistry, flags)
		},
	}

	cmd.Flags().StringVar(&flags.ruleFormat, "rule-format", "combined",
		"rule identifier format in output: name, id, or combined")
	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, json")

	return cmd
}

func runRules(out io.Writer, registry *lint.Registry, flags *rulesFlags) error {
	ruleFormat := config.RuleFormat(flags.ruleFormat)
	if !ruleFormat.IsValid() {
		return exitErr(ExitInvalidUsage,
			fmt.Errorf("invalid rule format %q: must be name, id, or combined", flags.ruleFormat))
	}

	switch flags.format {
	case formatJSON:
		return outputRulesJSON(out, registry)
	case "text":
	default:
		return exitErr(ExitInvalidUsage, fmt.Errorf("invalid format %q: must be text or json", flags.format))
	}

	logger := logging.NewInteractive(out)

	rules := registry.Rules()
	if len(rules) == 0 {
		logger.Info("no rules registered")
		return nil
	}

	for _, rule := range rules {
		fixable := "no"
		if rule.CanFix() {
			fixable = "yes"
		}

		fields := []any{
			logging.FieldSeverity, rule.DefaultSeverity(),
			logging.FieldFixable, fixable,
		}
		if aliases := registry.Aliases(rule.ID()); len(aliases) > 0 {
			fields = append(fields, logging.FieldAliases, strings.Join(aliases, ","))
		}
		fields = append(fields, logging.FieldDescription, rule.Description())

		logger.Info(ruleFormat.Render(rule.ID(), rule.Name()), fields...)
	}

	return nil
}

func outputRulesJSON(out io.Writer, registry *lint.Registry) error {
	rules := registry.Rules()
	infos := make([]ruleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, ruleInfo{
			ID:          rule.ID(),
			Name:        rule.Name(),
			Description: rule.Description(),
			Severity:    string(rule.DefaultSeverity()),
			Fixable:     rule.CanFix(),
			Aliases:     registry.Aliases(rule.ID()),
		})
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
