package lint

import (
	"slices"
	"strings"
	"sync"
)

// Registry indexes rules by ID and name, plus any number of aliases per
// rule. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	rules   []Rule            // sorted by ID
	names   map[string]string // name -> ID
	aliases map[string]string // alias -> ID
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		names:   make(map[string]string),
		aliases: make(map[string]string),
	}
}

// DefaultRegistry holds the built-in rules, which register from init.
//
//nolint:gochecknoglobals // rules self-register
var DefaultRegistry = NewRegistry()

func compareID(rule Rule, id string) int {
	return strings.Compare(rule.ID(), id)
}

// Register adds rule, replacing any rule with the same ID.
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, found := slices.BinarySearchFunc(r.rules, rule.ID(), compareID)
	if found {
		delete(r.names, r.rules[i].Name())
		r.rules[i] = rule
	} else {
		r.rules = slices.Insert(r.rules, i, rule)
	}
	r.names[rule.Name()] = rule.ID()
}

// RegisterAlias makes alias resolve to ruleID. The target need not be
// registered yet.
func (r *Registry) RegisterAlias(alias, ruleID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[alias] = ruleID
}

func (r *Registry) byID(id string) (Rule, bool) {
	i, found := slices.BinarySearchFunc(r.rules, id, compareID)
	if !found {
		return nil, false
	}
	return r.rules[i], true
}

// Get looks a rule up by ID, then by name. Aliases are not consulted.
func (r *Registry) Get(key string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if rule, ok := r.byID(key); ok {
		return rule, true
	}
	if id, ok := r.names[key]; ok {
		return r.byID(id)
	}
	return nil, false
}

// Resolve is Get extended to aliases. It returns the canonical rule ID.
// An alias whose target is not registered does not resolve.
func (r *Registry) Resolve(key string) (string, Rule, bool) {
	if rule, ok := r.Get(key); ok {
		return rule.ID(), rule, true
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if rule, ok := r.byID(r.aliases[key]); ok {
		return rule.ID(), rule, true
	}
	return "", nil, false
}

// Rules returns the registered rules ordered by ID.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.rules)
}

// IDs returns the registered rule IDs in order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, len(r.rules))
	for i, rule := range r.rules {
		ids[i] = rule.ID()
	}
	return ids
}

// Aliases returns the sorted aliases pointing at ruleID.
func (r *Registry) Aliases(ruleID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []string
	for alias, target := range r.aliases {
		if target == ruleID {
			out = append(out, alias)
		}
	}
	slices.Sort(out)
	return out
}
