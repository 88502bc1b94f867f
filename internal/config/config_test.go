package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 23, cfg.Solver.MaxLength)
	assert.Equal(t, 30*time.Second, cfg.Solver.Timeout)
	assert.True(t, cfg.Storage.CacheTables)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "twophase.db", filepath.Base(cfg.Storage.DBPath))
}

func TestLoadFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
solver:
  max_length: 21
  timeout: 5s
storage:
  cache_tables: false
  db_path: /tmp/solves.db
log:
  level: debug
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 21, cfg.Solver.MaxLength)
	assert.Equal(t, 5*time.Second, cfg.Solver.Timeout)
	assert.False(t, cfg.Storage.CacheTables)
	assert.Equal(t, "/tmp/solves.db", cfg.Storage.DBPath)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadSearchesWorkingDirectory(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("solver:\n  max_length: 20\n"), 0o644))
	t.Chdir(dir)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.Solver.MaxLength)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	t.Setenv("TWOPHASE_SOLVER_MAX_LENGTH", "19")
	t.Setenv("TWOPHASE_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 19, cfg.Solver.MaxLength)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadErrors(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err, "an explicit config path must exist")

	t.Setenv("TWOPHASE_SOLVER_MAX_LENGTH", "-1")
	_, err = Load("")
	assert.ErrorContains(t, err, "max_length")
}

func TestValidateLogLevel(t *testing.T) {
	cfg := Config{Log: LogConfig{Level: "loud"}}
	assert.ErrorContains(t, cfg.Validate(), "log.level")

	cfg.Log.Level = "DEBUG"
	assert.NoError(t, cfg.Validate())
}
