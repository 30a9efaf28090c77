package config

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
)

// commentWrapWidth is the maximum width of wrapped template comments.
const commentWrapWidth = 70

// TemplateFileName is the project config file written by "gomdtable init".
const TemplateFileName = ".gomdtable.yml"

// RuleInfo describes a rule for the generated template. It is filled in
// by the caller so this package does not import the rule registry.
type RuleInfo struct {
	ID          string
	Name        string
	Description string
	Aliases     []string
	Fixable     bool
}

const templateHeader = `# gomdtable configuration
#
# Values here override /etc/gomdtable/config.yml and
# $XDG_CONFIG_HOME/gomdtable/config.yml. GOMDTABLE_* environment
# variables and command-line flags override this file.

# Tables are a GitHub Flavored Markdown extension; with commonmark
# no tables are recognized and nothing is checked.
flavor: gfm

# Severity for rules without their own: error, warning or info.
severity_default: warning

# Glob patterns of files to skip. "**" crosses directories.
# ignore:
#   - "vendor/**"
#   - "CHANGELOG.md"

# Backups are written next to a file before it is fixed.
backups:
  enabled: true
  mode: sidecar # or none

# Per-rule settings, keyed by rule ID, name or alias.
rules:
`

// GenerateTemplate returns a commented YAML config listing rules in ID
// order. The result parses with FromYAML to the documented defaults.
func GenerateTemplate(rules []RuleInfo) []byte {
	rules = slices.Clone(rules)
	slices.SortFunc(rules, func(a, b RuleInfo) int { return strings.Compare(a.ID, b.ID) })

	var buf bytes.Buffer
	buf.WriteString(templateHeader)

	for _, rule := range rules {
		fmt.Fprintf(&buf, "\n  # %s: %s\n", rule.ID, rule.Name)
		if rule.Description != "" {
			fmt.Fprintf(&buf, "  # %s\n", wrapComment(rule.Description, commentWrapWidth))
		}
		if len(rule.Aliases) > 0 {
			fmt.Fprintf(&buf, "  # Aliases: %s\n", strings.Join(rule.Aliases, ", "))
		}
		if rule.Fixable {
			buf.WriteString("  # Fixable: yes\n")
		}
		fmt.Fprintf(&buf, "  %s:\n", rule.Name)
		buf.WriteString("    enabled: true\n")
		buf.WriteString("    # severity: warning\n")
		if rule.Fixable {
			buf.WriteString("    # auto_fix: true\n")
		}
	}

	return buf.Bytes()
}

// wrapComment wraps text at maxWidth, continuing with an indented "#".
func wrapComment(text string, maxWidth int) string {
	if len(text) <= maxWidth {
		return text
	}

	var lines []string
	current := ""
	for _, word := range strings.Fields(text) {
		switch {
		case current == "":
			current = word
		case len(current)+1+len(word) <= maxWidth:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}

	return strings.Join(lines, "\n  # ")
}
