package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithoutOverrideUsesEmbeddedDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 4, cfg.Search.Workers)
	assert.Equal(t, 400*time.Millisecond, cfg.Search.MoveBudgetDuration())
}

func TestLoadOverrideMergesOntoDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"9090\"\nsearch:\n  workers: 8\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 8, cfg.Search.Workers)
	// Untouched defaults survive the merge.
	assert.Equal(t, "gregorywebp", cfg.Notify.ReplayBucket)
}
