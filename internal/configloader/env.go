package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/gomdtable/pkg/config"
)

// envVarPrefix prefixes every environment variable gomdtable reads.
const envVarPrefix = "GOMDTABLE_"

type envVar struct {
	description string
	apply       func(cfg *config.Config, value string) error
}

// envVars maps variable names without the prefix to their setters.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envVars = map[string]envVar{
	"FLAVOR": {
		description: "Markdown flavor: gfm or commonmark",
		apply: func(cfg *config.Config, v string) error {
			cfg.Flavor = config.Flavor(v)
			return nil
		},
	},
	"SEVERITY_DEFAULT": {
		description: "Default severity: error, warning or info",
		apply: func(cfg *config.Config, v string) error {
			cfg.SeverityDefault = v
			return nil
		},
	},
	"FORMAT": {
		description: "Output format: text, json or diff",
		apply: func(cfg *config.Config, v string) error {
			cfg.Format = config.OutputFormat(v)
			return nil
		},
	},
	"FIX": {
		description: "Fix tables in place: true or false",
		apply:       boolSetter(func(cfg *config.Config, b bool) { cfg.Fix = b }),
	},
	"DRY_RUN": {
		description: "Show fixes as a diff without writing: true or false",
		apply:       boolSetter(func(cfg *config.Config, b bool) { cfg.DryRun = b }),
	},
	"JOBS": {
		description: "Number of files processed in parallel (0 = one per CPU)",
		apply: func(cfg *config.Config, v string) error {
			jobs, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid integer %q", v)
			}
			cfg.Jobs = jobs
			return nil
		},
	},
	"IGNORE": {
		description: "Comma-separated glob patterns of files to skip",
		apply: func(cfg *config.Config, v string) error {
			cfg.Ignore = parseList(v)
			return nil
		},
	},
	"BACKUPS_ENABLED": {
		description: "Write backups before fixing: true or false",
		apply: boolSetter(func(cfg *config.Config, b bool) {
			cfg.Backups.Enabled = &b
		}),
	},
	"BACKUPS_MODE": {
		description: "Backup mode: sidecar or none",
		apply: func(cfg *config.Config, v string) error {
			cfg.Backups.Mode = v
			return nil
		},
	},
	"NO_BACKUPS": {
		description: "Disable backups: true or false",
		apply:       boolSetter(func(cfg *config.Config, b bool) { cfg.NoBackups = b }),
	},
}

func boolSetter(set func(cfg *config.Config, b bool)) func(*config.Config, string) error {
	return func(cfg *config.Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", v)
		}
		set(cfg, b)
		return nil
	}
}

// LoadFromEnv applies GOMDTABLE_* variables to cfg. Empty variables are
// ignored.
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, name := range envVarNames() {
		value := os.Getenv(envVarPrefix + name)
		if value == "" {
			continue
		}
		if err := envVars[name].apply(cfg, value); err != nil {
			return fmt.Errorf("%s%s: %w", envVarPrefix, name, err)
		}
	}
	return nil
}

// ListEnvVars returns each supported variable with its description.
func ListEnvVars() map[string]string {
	out := make(map[string]string, len(envVars))
	for name, v := range envVars {
		out[envVarPrefix+name] = v.description
	}
	return out
}

func envVarNames() []string {
	names := make([]string, 0, len(envVars))
	for name := range envVars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func parseList(value string) []string {
	var out []string
	for part := range strings.SplitSeq(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
