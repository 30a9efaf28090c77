// Package config defines the configuration types shared by the gomdtable
// loader, engine and CLI. It has no knowledge of where values come from.
package config

import "slices"

// Severity represents the severity level of a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Severities lists the valid severities, most severe first.
func Severities() []Severity {
	return []Severity{SeverityError, SeverityWarning, SeverityInfo}
}

// IsValid reports whether s is a known severity.
func (s Severity) IsValid() bool {
	return slices.Contains(Severities(), s)
}

// RuleConfig holds per-rule settings. Nil fields inherit the rule default.
type RuleConfig struct {
	Enabled  *bool          `mapstructure:"enabled" yaml:"enabled,omitempty" toml:"enabled,omitempty"`
	Severity *string        `mapstructure:"severity" yaml:"severity,omitempty" toml:"severity,omitempty"`
	AutoFix  *bool          `mapstructure:"auto_fix" yaml:"auto_fix,omitempty" toml:"auto_fix,omitempty"`
	Options  map[string]any `mapstructure:"options" yaml:"options,omitempty" toml:"options,omitempty"`
}

// BackupsConfig controls backups written before a fixed file is replaced.
type BackupsConfig struct {
	// Enabled is nil when unset so a later source can turn backups off.
	Enabled *bool  `mapstructure:"enabled" yaml:"enabled,omitempty" toml:"enabled,omitempty"`
	Mode    string `mapstructure:"mode" yaml:"mode,omitempty" toml:"mode,omitempty"`
}

// IsEnabled reports whether backups are on. Unset means on.
func (b BackupsConfig) IsEnabled() bool {
	return b.Enabled == nil || *b.Enabled
}

// BackupModes lists the valid backup modes.
func BackupModes() []string {
	return []string{"sidecar", "none"}
}

// OutputFormat selects the reporter.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatDiff    OutputFormat = "diff"
	FormatSARIF   OutputFormat = "sarif"
	FormatSummary OutputFormat = "summary"
)

// OutputFormats lists the valid output formats.
func OutputFormats() []OutputFormat {
	return []OutputFormat{FormatText, FormatJSON, FormatDiff, FormatSARIF, FormatSummary}
}

// IsValid reports whether f is a known output format.
func (f OutputFormat) IsValid() bool {
	return slices.Contains(OutputFormats(), f)
}

// RuleFormat controls how rule identifiers appear in output.
type RuleFormat string

const (
	RuleFormatName     RuleFormat = "name"     // "table-column-style"
	RuleFormatID       RuleFormat = "id"       // "MD060"
	RuleFormatCombined RuleFormat = "combined" // "MD060/table-column-style"
)

// IsValid reports whether f is a known rule format.
func (f RuleFormat) IsValid() bool {
	switch f {
	case RuleFormatName, RuleFormatID, RuleFormatCombined:
		return true
	default:
		return false
	}
}

// Render writes a rule identifier in format f. Without a name the ID is
// used whatever the format.
func (f RuleFormat) Render(id, name string) string {
	switch {
	case name == "" || f == RuleFormatID:
		return id
	case f == RuleFormatCombined:
		return id + "/" + name
	default:
		return name
	}
}

// Flavor selects the Markdown dialect. Tables only exist in GFM.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// IsValid reports whether f is a known flavor.
func (f Flavor) IsValid() bool {
	return f == FlavorCommonMark || f == FlavorGFM
}

// Config is the resolved configuration for a run.
type Config struct {
	Flavor Flavor `mapstructure:"flavor" yaml:"flavor,omitempty" toml:"flavor,omitempty"`

	// SeverityDefault applies to rules without a severity of their own.
	SeverityDefault string `mapstructure:"severity_default" yaml:"severity_default,omitempty" toml:"severity_default,omitempty"`

	// Rules is keyed by rule ID, name or alias until the loader
	// normalizes the keys to IDs.
	Rules map[string]RuleConfig `mapstructure:"rules" yaml:"rules,omitempty" toml:"rules,omitempty"`

	// Ignore holds glob patterns of files to skip.
	Ignore []string `mapstructure:"ignore" yaml:"ignore,omitempty" toml:"ignore,omitempty"`

	Backups BackupsConfig `mapstructure:"backups" yaml:"backups,omitempty" toml:"backups,omitempty"`

	// CLI-only fields.

	Fix          bool         `mapstructure:"-" yaml:"-" toml:"-"`
	DryRun       bool         `mapstructure:"-" yaml:"-" toml:"-"`
	Format       OutputFormat `mapstructure:"-" yaml:"-" toml:"-"`
	RuleFormat   RuleFormat   `mapstructure:"-" yaml:"-" toml:"-"`
	Jobs         int          `mapstructure:"-" yaml:"-" toml:"-"`
	EnableRules  []string     `mapstructure:"-" yaml:"-" toml:"-"`
	DisableRules []string     `mapstructure:"-" yaml:"-" toml:"-"`
	FixRules     []string     `mapstructure:"-" yaml:"-" toml:"-"`
	NoBackups    bool         `mapstructure:"-" yaml:"-" toml:"-"`
}

// NewConfig returns the built-in defaults.
func NewConfig() *Config {
	return &Config{
		Flavor:          FlavorGFM,
		SeverityDefault: string(SeverityWarning),
		Rules:           make(map[string]RuleConfig),
		Backups:         BackupsConfig{Mode: "sidecar"},
		Format:          FormatText,
		RuleFormat:      RuleFormatName,
	}
}
