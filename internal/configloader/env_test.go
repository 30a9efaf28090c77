package configloader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdtable/pkg/config"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("GOMDTABLE_FLAVOR", "commonmark")
	t.Setenv("GOMDTABLE_SEVERITY_DEFAULT", "error")
	t.Setenv("GOMDTABLE_FORMAT", "json")
	t.Setenv("GOMDTABLE_FIX", "true")
	t.Setenv("GOMDTABLE_DRY_RUN", "1")
	t.Setenv("GOMDTABLE_JOBS", "2")
	t.Setenv("GOMDTABLE_IGNORE", "vendor/**, ,CHANGELOG.md")
	t.Setenv("GOMDTABLE_BACKUPS_ENABLED", "false")
	t.Setenv("GOMDTABLE_BACKUPS_MODE", "none")
	t.Setenv("GOMDTABLE_NO_BACKUPS", "true")

	cfg := config.NewConfig()
	require.NoError(t, LoadFromEnv(cfg))

	assert.Equal(t, config.FlavorCommonMark, cfg.Flavor)
	assert.Equal(t, "error", cfg.SeverityDefault)
	assert.Equal(t, config.FormatJSON, cfg.Format)
	assert.True(t, cfg.Fix)
	assert.True(t, cfg.DryRun)
	assert.Equal(t, 2, cfg.Jobs)
	assert.Equal(t, []string{"vendor/**", "CHANGELOG.md"}, cfg.Ignore)
	assert.False(t, cfg.Backups.IsEnabled())
	assert.Equal(t, "none", cfg.Backups.Mode)
	assert.True(t, cfg.NoBackups)
}

func TestLoadFromEnv_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"GOMDTABLE_FIX", "maybe", "GOMDTABLE_FIX: invalid boolean"},
		{"GOMDTABLE_JOBS", "many", "GOMDTABLE_JOBS: invalid integer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.name, tt.value)
			require.ErrorContains(t, LoadFromEnv(config.NewConfig()), tt.want)
		})
	}
}

func TestLoadFromEnv_NilConfig(t *testing.T) {
	t.Parallel()

	assert.NoError(t, LoadFromEnv(nil))
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	assert.Len(t, vars, 10)
	assert.Contains(t, vars, "GOMDTABLE_FLAVOR")
	for name, desc := range vars {
		assert.NotEmpty(t, desc, name)
	}
}
