package lint

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdtable/pkg/config"
)

// mockRule for testing.
type mockRule struct {
	id   string
	name string
}

func (m *mockRule) ID() string                               { return m.id }
func (m *mockRule) Name() string                             { return m.name }
func (m *mockRule) Description() string                      { return "mock" }
func (m *mockRule) DefaultEnabled() bool                     { return true }
func (m *mockRule) DefaultSeverity() config.Severity         { return config.SeverityWarning }
func (m *mockRule) Tags() []string                           { return nil }
func (m *mockRule) CanFix() bool                             { return false }
func (m *mockRule) Apply(*RuleContext) ([]Diagnostic, error) { return nil, nil }

func newTableRegistry() *Registry {
	reg := NewRegistry()
	reg.Register(&mockRule{id: "MD060", name: "table-column-style"})
	reg.Register(&mockRule{id: "MD056", name: "table-column-count"})
	reg.RegisterAlias("markdown-consistent-table-width", "MD060")
	return reg
}

func TestRegistry_Lookups(t *testing.T) {
	t.Parallel()

	reg := newTableRegistry()

	got, ok := reg.Get("MD060")
	require.True(t, ok)
	assert.Equal(t, "table-column-style", got.Name())

	got, ok = reg.Get("table-column-count")
	require.True(t, ok)
	assert.Equal(t, "MD056", got.ID())

	got, ok = reg.Get("table-column-style")
	require.True(t, ok, "Get falls back to names")
	assert.Equal(t, "MD060", got.ID())

	_, ok = reg.Get("markdown-consistent-table-width")
	assert.False(t, ok, "Get does not follow aliases")
}

func TestRegistry_Resolve(t *testing.T) {
	t.Parallel()

	reg := newTableRegistry()
	reg.RegisterAlias("dangling", "MD999")

	tests := []struct {
		key    string
		wantID string
		wantOK bool
	}{
		{"MD060", "MD060", true},
		{"table-column-style", "MD060", true},
		{"markdown-consistent-table-width", "MD060", true},
		{"table-column-count", "MD056", true},
		{"dangling", "", false},
		{"unknown", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()

			id, rule, ok := reg.Resolve(tt.key)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
			if ok {
				assert.Equal(t, tt.wantID, rule.ID())
			} else {
				assert.Nil(t, rule)
			}
		})
	}
}

func TestRegistry_SortedListings(t *testing.T) {
	t.Parallel()

	reg := newTableRegistry()

	assert.Equal(t, []string{"MD056", "MD060"}, reg.IDs())

	rules := reg.Rules()
	require.Len(t, rules, 2)
	assert.Equal(t, "MD056", rules[0].ID())
	assert.Equal(t, "MD060", rules[1].ID())
}

func TestRegistry_Aliases(t *testing.T) {
	t.Parallel()

	reg := newTableRegistry()
	reg.RegisterAlias("column-style", "MD060")

	assert.Equal(t, []string{"column-style", "markdown-consistent-table-width"}, reg.Aliases("MD060"))
	assert.Empty(t, reg.Aliases("MD056"))
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	t.Parallel()

	reg := newTableRegistry()
	reg.Register(&mockRule{id: "MD060", name: "column-style"})

	assert.Len(t, reg.Rules(), 2)

	_, ok := reg.Get("table-column-style")
	assert.False(t, ok, "old name is dropped")

	got, ok := reg.Get("column-style")
	require.True(t, ok)
	assert.Equal(t, "MD060", got.ID())
}

func TestRegistry_AliasBeforeRule(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	reg.RegisterAlias("late", "MD001")

	_, _, ok := reg.Resolve("late")
	assert.False(t, ok)

	reg.Register(&mockRule{id: "MD001", name: "first"})
	id, _, ok := reg.Resolve("late")
	assert.True(t, ok)
	assert.Equal(t, "MD001", id)
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	reg := newTableRegistry()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			reg.RegisterAlias("column-style", "MD060")
		}()
		go func() {
			defer wg.Done()
			_, _, _ = reg.Resolve("table-column-style")
			_ = reg.IDs()
		}()
	}
	wg.Wait()

	id, _, ok := reg.Resolve("column-style")
	assert.True(t, ok)
	assert.Equal(t, "MD060", id)
}
