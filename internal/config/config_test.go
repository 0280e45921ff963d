package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/stint/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STINT_CONFIG_PATH", "")
	t.Setenv("STINT_DATA_DIR", "")
	t.Setenv("STINT_BACKEND", "")
	t.Setenv("STINT_LOG_LEVEL", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, config.BackendYAML, cfg.Data.Backend)
	require.Equal(t, "warn", cfg.Log.Level)
	require.NotEmpty(t, cfg.Data.Dir)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STINT_CONFIG_PATH", "")
	t.Setenv("STINT_DATA_DIR", "/tmp/stint-test")
	t.Setenv("STINT_BACKEND", "sqlite")
	t.Setenv("STINT_LOG_LEVEL", "debug")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "/tmp/stint-test", cfg.Data.Dir)
	require.Equal(t, config.BackendSQLite, cfg.Data.Backend)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data:\n  dir: /data/stint\n  backend: sqlite\nlog:\n  level: info\n"), 0o644))

	t.Setenv("STINT_CONFIG_PATH", path)
	t.Setenv("STINT_DATA_DIR", "")
	t.Setenv("STINT_BACKEND", "")
	t.Setenv("STINT_LOG_LEVEL", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "/data/stint", cfg.Data.Dir)
	require.Equal(t, config.BackendSQLite, cfg.Data.Backend)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	t.Setenv("STINT_CONFIG_PATH", "")
	t.Setenv("STINT_BACKEND", "postgres")

	_, err := config.Load()
	require.Error(t, err)
}
