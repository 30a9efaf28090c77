package rules

import "github.com/yaklabco/gomdtable/pkg/lint"

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *lint.Registry) {
	registry.Register(NewTableColumnCountRule()) // MD056
	registry.Register(NewTableColumnStyleRule()) // MD060
}

// RegisterAliases registers alternate names that differ from a rule's
// canonical Name().
func RegisterAliases(registry *lint.Registry) {
	registry.RegisterAlias("markdown-consistent-table-width", "MD060")
}

// init registers all built-in rules with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(lint.DefaultRegistry)
	RegisterAliases(lint.DefaultRegistry)
}
