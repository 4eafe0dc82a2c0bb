package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Empty(t, cfg.API.Endpoint)
	assert.Empty(t, cfg.API.Email)
	assert.Empty(t, cfg.API.Password)
	assert.Equal(t, 30, cfg.API.TimeoutSeconds)
	assert.Equal(t, 1, cfg.Report.IntervalPerson)
	assert.False(t, cfg.Report.CountUnassigned)
	assert.False(t, cfg.Report.Prefetch)
	assert.Empty(t, cfg.Output.Path)
	assert.False(t, cfg.Output.Detailed)
	assert.False(t, cfg.Output.Workbook)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadValidYAMLOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	yamlContent := `
api:
  endpoint: "https://example.fogbugz.com/api.asp"
  email: "dev@example.com"
  timeout_seconds: 10
report:
  interval_person: 2
  count_unassigned: true
logging:
  level: "debug"
`
	err := os.WriteFile(cfgPath, []byte(yamlContent), 0644)
	require.NoError(t, err)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	// Overridden values
	assert.Equal(t, "https://example.fogbugz.com/api.asp", cfg.API.Endpoint)
	assert.Equal(t, "dev@example.com", cfg.API.Email)
	assert.Equal(t, 10, cfg.API.TimeoutSeconds)
	assert.Equal(t, 2, cfg.Report.IntervalPerson)
	assert.True(t, cfg.Report.CountUnassigned)
	assert.Equal(t, "debug", cfg.Logging.Level)

	// Untouched values keep their defaults
	assert.Empty(t, cfg.API.Password)
	assert.False(t, cfg.Report.Prefetch)
	assert.False(t, cfg.Output.Workbook)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	assert.Error(t, err)
}

func TestLoadInvalidYAMLFails(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("api: [not a mapping"), 0644))

	_, err := Load(cfgPath)
	assert.Error(t, err)
}

func TestLoadOrCreateAtWritesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "nested", "config.yaml")

	cfg, err := LoadOrCreateAt(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.API.TimeoutSeconds)

	// File now exists and round-trips.
	_, err = os.Stat(cfgPath)
	require.NoError(t, err)

	again, err := LoadOrCreateAt(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}

func TestApplyEnvOverridesFileValues(t *testing.T) {
	t.Setenv("FOGBUGZ_ENDPOINT", "https://env.fogbugz.com/api.asp")
	t.Setenv("FOGBUGZ_EMAIL", "env@example.com")
	t.Setenv("FOGBUGZ_PASSWORD", "hunter2")

	cfg := DefaultConfig()
	cfg.API.Endpoint = "https://file.fogbugz.com/api.asp"

	ApplyEnv(cfg)

	assert.Equal(t, "https://env.fogbugz.com/api.asp", cfg.API.Endpoint)
	assert.Equal(t, "env@example.com", cfg.API.Email)
	assert.Equal(t, "hunter2", cfg.API.Password)
}

func TestApplyEnvLeavesUnsetFieldsAlone(t *testing.T) {
	t.Setenv("FOGBUGZ_ENDPOINT", "")
	t.Setenv("FOGBUGZ_EMAIL", "")
	t.Setenv("FOGBUGZ_PASSWORD", "")

	cfg := DefaultConfig()
	cfg.API.Email = "file@example.com"

	ApplyEnv(cfg)

	assert.Equal(t, "file@example.com", cfg.API.Email)
}
