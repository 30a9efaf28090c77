// Package configloader resolves the gomdtable configuration from defaults,
// config files, the environment and command-line flags.
package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/yaklabco/gomdtable/internal/logging"
	"github.com/yaklabco/gomdtable/pkg/config"
	"github.com/yaklabco/gomdtable/pkg/lint"
)

// LoadOptions controls which sources Load consults.
type LoadOptions struct {
	// WorkingDir anchors the project config search. Empty means the
	// process working directory.
	WorkingDir string

	// ExplicitPath is a config file named with --config.
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// CLIConfig holds flag values and takes precedence over everything.
	CLIConfig *config.Config

	// Registry resolves rule names and aliases. Nil means
	// lint.DefaultRegistry.
	Registry *lint.Registry
}

// LoadResult is the resolved configuration and where it came from.
type LoadResult struct {
	Config *config.Config
	Paths  *ConfigPaths

	// LoadedFrom lists the files read, lowest precedence first.
	LoadedFrom []string

	Warnings []string
}

// Load merges, lowest to highest precedence: defaults, system config, user
// config, project config, the --config file, GOMDTABLE_* variables and CLI
// flags. Rule keys are then normalized to rule IDs and the result is
// validated. Validation errors are all reported, wrapped in
// ErrInvalidConfig.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	registry := opts.Registry
	if registry == nil {
		registry = lint.DefaultRegistry
	}

	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	sources := []struct {
		path    string
		skip    bool
		purpose string
	}{
		{paths.System, opts.IgnoreSystemConfig, "system"},
		{paths.User, opts.IgnoreUserConfig, "user"},
		{paths.Project, opts.IgnoreProjectConfig || opts.ExplicitPath != "", "project"},
		{paths.Explicit, false, "explicit"},
	}

	logger := logging.FromContext(ctx)
	for _, src := range sources {
		if src.path == "" || src.skip {
			continue
		}
		fileCfg, err := LoadFile(src.path)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", src.purpose, err)
		}
		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, src.path)
		logger.Debug("loaded config", logging.FieldConfig, src.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	cfg = merge(cfg, opts.CLIConfig)

	normalizeRuleKeys(cfg, registry, result)

	validation := Validate(cfg, registry)
	if err := validation.Err(); err != nil {
		return nil, err
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// LoadFile reads one config file. Files ending in .toml are decoded as
// TOML, everything else as YAML.
func LoadFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	if !strings.EqualFold(filepath.Ext(path), ".toml") {
		cfg, err := config.FromYAML(content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return cfg, nil
	}

	cfg := &config.Config{}
	if err := toml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("%s: parse toml: %w", path, err)
	}
	if cfg.Rules == nil {
		cfg.Rules = make(map[string]config.RuleConfig)
	}
	return cfg, nil
}

// normalizeRuleKeys rewrites rule names and aliases to rule IDs. When two
// keys name the same rule, they are merged in sorted key order and a
// warning is recorded. Unknown keys are kept for validation to report.
func normalizeRuleKeys(cfg *config.Config, registry *lint.Registry, result *LoadResult) {
	if len(cfg.Rules) == 0 {
		return
	}

	keys := make([]string, 0, len(cfg.Rules))
	for key := range cfg.Rules {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	normalized := make(map[string]config.RuleConfig, len(cfg.Rules))
	seen := make(map[string]string, len(cfg.Rules))

	for _, key := range keys {
		ruleCfg := cfg.Rules[key]

		id, _, ok := registry.Resolve(key)
		if !ok {
			normalized[key] = ruleCfg
			continue
		}

		if first, dup := seen[id]; dup {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("duplicate rule configuration: %q and %q both refer to %s; merging in that order",
					first, key, id))
			ruleCfg = mergeRuleConfig(normalized[id], ruleCfg)
		} else {
			seen[id] = key
		}
		normalized[id] = ruleCfg
	}

	cfg.Rules = normalized
}
