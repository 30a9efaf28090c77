package reporter

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gomdtable/pkg/config"
)

// Format selects a reporter. It shares its values with the config file's
// format key.
type Format = config.OutputFormat

const (
	FormatText    = config.FormatText
	FormatJSON    = config.FormatJSON
	FormatDiff    = config.FormatDiff
	FormatSARIF   = config.FormatSARIF
	FormatSummary = config.FormatSummary
)

// ParseFormat parses a --format value. Empty means text; matching is
// case-sensitive.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatText, nil
	}
	if f := Format(s); f.IsValid() {
		return f, nil
	}

	names := make([]string, 0, len(config.OutputFormats()))
	for _, f := range config.OutputFormats() {
		names = append(names, string(f))
	}
	return "", fmt.Errorf("unknown format %q; valid formats: %s", s, strings.Join(names, ", "))
}
