package cli

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdtable/internal/ui/pretty"
)

const usageTemplate = `{{heading "Usage:"}}{{if .Runnable}}
  {{command .UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{command .CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

{{heading "Aliases:"}}
  {{dim (join .Aliases ", ")}}{{end}}{{if .HasExample}}

{{heading "Examples:"}}
{{dim .Example}}{{end}}{{if .HasAvailableSubCommands}}

{{heading "Commands:"}}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{subcommand (rpad .Name .NamePadding)}} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

{{heading "Flags:"}}
{{flags .LocalFlags.FlagUsages}}{{end}}{{if .HasAvailableInheritedFlags}}

{{heading "Global Flags:"}}
{{flags .InheritedFlags.FlagUsages}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{command (print .CommandPath " [command] --help")}}" for more information about a command.{{end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{trimRight .}}

{{end}}{{if or .Runnable .HasSubCommands}}{{template "usage" .}}{{end}}`

var flagName = regexp.MustCompile(`--?[A-Za-z][\w-]*`)

// helpFormatter renders cobra help with lipgloss styles. The color mode
// is read at render time so a --color flag on the same command line
// applies to its own help.
type helpFormatter struct {
	colorMode *string
}

func (h helpFormatter) funcs(w io.Writer) template.FuncMap {
	mode := "auto"
	if h.colorMode != nil {
		mode = *h.colorMode
	}
	styles := pretty.NewStyles(pretty.IsColorEnabled(mode, w))

	return template.FuncMap{
		"heading":    styles.Warning.Render,
		"command":    styles.DiffHunk.Render,
		"subcommand": styles.DiffAdd.Render,
		"dim":        styles.Dim.Render,
		"flags":      func(usages string) string { return styleFlagUsages(usages, styles.Info, styles.Dim) },
		"join":       strings.Join,
		"rpad":       rpad,
		"trimRight":  func(s string) string { return strings.TrimRight(s, " \t\n") },
	}
}

func (h helpFormatter) render(w io.Writer, name string, cmd *cobra.Command) error {
	tmpl := template.New("help").Funcs(h.funcs(w))
	if _, err := tmpl.Parse(helpTemplate); err != nil {
		return fmt.Errorf("parse help template: %w", err)
	}
	if _, err := tmpl.New("usage").Parse(usageTemplate); err != nil {
		return fmt.Errorf("parse usage template: %w", err)
	}
	return tmpl.ExecuteTemplate(w, name, cmd)
}

// applyHelp installs styled help and usage output on cmd. Subcommands
// inherit both.
func applyHelp(cmd *cobra.Command, colorMode *string) {
	h := helpFormatter{colorMode: colorMode}

	cmd.SetUsageFunc(func(c *cobra.Command) error {
		return h.render(c.OutOrStderr(), "usage", c)
	})
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := h.render(c.OutOrStdout(), "help", c); err != nil {
			c.PrintErrln(err)
		}
	})
}

// styleFlagUsages colors flag names in pflag's usage block. pflag separates
// the flag column from its description with at least three spaces.
func styleFlagUsages(usages string, flag, dim lipgloss.Style) string {
	lines := strings.Split(strings.TrimRight(usages, "\n"), "\n")
	for i, line := range lines {
		body := strings.TrimLeft(line, " ")
		indent := line[:len(line)-len(body)]

		head, desc, ok := strings.Cut(body, "   ")
		if !ok {
			continue
		}

		tokens := strings.Fields(head)
		for j, tok := range tokens {
			if flagName.MatchString(tok) && strings.HasPrefix(tok, "-") {
				tokens[j] = flagName.ReplaceAllStringFunc(tok, func(s string) string { return flag.Render(s) })
			} else {
				tokens[j] = dim.Render(tok)
			}
		}
		lines[i] = indent + strings.Join(tokens, " ") + "   " + desc
	}
	return strings.Join(lines, "\n")
}

func rpad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
