package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 8765, cfg.Port)
	assert.Equal(t, 5000, cfg.TargetTotalCases)
	assert.Equal(t, 0, cfg.GenerationTarget)
	assert.Equal(t, int64(42), cfg.Seed)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"port": 9100,
		"target_total_cases": 200,
		"generation_target": 50,
		"seed": 7
	}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, 200, cfg.TargetTotalCases)
	assert.Equal(t, 50, cfg.GenerationTarget)
	assert.Equal(t, int64(7), cfg.Seed)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("CASEFORGE_PORT", "9200")
	t.Setenv("CASEFORGE_STATE_DIR", "elsewhere/state")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9200, cfg.Port)
	assert.Equal(t, "elsewhere/state", cfg.StateDir)
}

func TestGenerationTargetAboveTotalRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"target_total_cases": 10,
		"generation_target": 20
	}`), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestInvalidPortRejected(t *testing.T) {
	t.Setenv("CASEFORGE_PORT", "70000")

	_, err := Load("")
	assert.Error(t, err)
}
