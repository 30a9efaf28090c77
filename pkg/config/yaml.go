package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// FromYAML parses a configuration file body. Unset fields stay zero so
// the result can be merged over lower-precedence sources.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if cfg.Rules == nil {
		cfg.Rules = make(map[string]RuleConfig)
	}
	return cfg, nil
}
