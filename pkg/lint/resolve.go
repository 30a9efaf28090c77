package lint

import (
	"maps"
	"slices"

	"github.com/yaklabco/gomdtable/pkg/config"
)

// ResolvedRule is a rule with its effective settings for one run.
type ResolvedRule struct {
	Rule     Rule
	Enabled  bool
	Severity config.Severity
	AutoFix  bool

	// Config is the matching entry of the rules map, or nil.
	Config *config.RuleConfig
}

// ResolveRules returns the enabled rules of registry, ordered by ID, with
// cfg applied. Keys anywhere in cfg may be rule IDs, names or aliases.
//
// Precedence, lowest first: rule defaults, EnableRules, DisableRules, the
// Rules map, FixRules. Fixing additionally requires cfg.Fix and a rule
// that can fix.
func ResolveRules(registry *Registry, cfg *config.Config) []ResolvedRule {
	var out []ResolvedRule
	for _, rule := range registry.Rules() {
		if rr := resolve(registry, rule, cfg); rr.Enabled {
			out = append(out, rr)
		}
	}
	return out
}

func resolve(registry *Registry, rule Rule, cfg *config.Config) ResolvedRule {
	rr := ResolvedRule{
		Rule:     rule,
		Enabled:  rule.DefaultEnabled(),
		Severity: rule.DefaultSeverity(),
		AutoFix:  rule.CanFix(),
	}
	if cfg == nil {
		return rr
	}

	names := func(key string) bool {
		id, _, ok := registry.Resolve(key)
		return ok && id == rule.ID()
	}

	switch {
	case slices.ContainsFunc(cfg.DisableRules, names):
		rr.Enabled = false
	case slices.ContainsFunc(cfg.EnableRules, names):
		rr.Enabled = true
	}

	if entry := ruleEntry(cfg.Rules, rule, names); entry != nil {
		rr.Config = entry
		if entry.Enabled != nil {
			rr.Enabled = *entry.Enabled
		}
		if entry.Severity != nil {
			rr.Severity = config.Severity(*entry.Severity)
		}
		if entry.AutoFix != nil {
			rr.AutoFix = *entry.AutoFix && rule.CanFix()
		}
	}

	if len(cfg.FixRules) > 0 {
		rr.AutoFix = rule.CanFix() && slices.ContainsFunc(cfg.FixRules, names)
	}
	rr.AutoFix = rr.AutoFix && cfg.Fix
	return rr
}

// ruleEntry picks the rules-map entry for rule. An entry keyed by ID beats
// one keyed by name, which beats aliases; aliases are tried in key order.
func ruleEntry(entries map[string]config.RuleConfig, rule Rule, names func(string) bool) *config.RuleConfig {
	for _, key := range []string{rule.ID(), rule.Name()} {
		if e, ok := entries[key]; ok {
			return &e
		}
	}
	for _, key := range slices.Sorted(maps.Keys(entries)) {
		if names(key) {
			e := entries[key]
			return &e
		}
	}
	return nil
}
