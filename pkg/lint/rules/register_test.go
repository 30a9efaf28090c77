package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdtable/pkg/lint"
)

func TestRegisterAll(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	RegisterAll(registry)

	assert.Equal(t, []string{"MD056", "MD060"}, registry.IDs())

	rule, ok := registry.Get("MD060")
	require.True(t, ok)
	assert.Equal(t, "table-column-style", rule.Name())
	assert.True(t, rule.CanFix())

	rule, ok = registry.Get("table-column-count")
	require.True(t, ok)
	assert.Equal(t, "MD056", rule.ID())
	assert.False(t, rule.CanFix())
}

func TestRegisterAliases(t *testing.T) {
	t.Parallel()

	registry := lint.NewRegistry()
	RegisterAll(registry)
	RegisterAliases(registry)

	tests := []struct {
		key    string
		wantID string
		wantOK bool
	}{
		{key: "markdown-consistent-table-width", wantID: "MD060", wantOK: true},
		{key: "table-column-style", wantID: "MD060", wantOK: true},
		{key: "MD060", wantID: "MD060", wantOK: true},
		{key: "table-column-count", wantID: "MD056", wantOK: true},
		{key: "no-trailing-spaces", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()

			id, rule, ok := registry.Resolve(tt.key)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.Nil(t, rule)
				return
			}
			assert.Equal(t, tt.wantID, id)
			assert.Equal(t, tt.wantID, rule.ID())
		})
	}
}

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	_, _, ok := lint.DefaultRegistry.Resolve("markdown-consistent-table-width")
	assert.True(t, ok)
	assert.Len(t, lint.DefaultRegistry.Rules(), 2)
}
