package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "assets", cfg.Storage.Bucket)
	assert.Equal(t, ".cache/assets", cfg.Storage.CacheDir)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, 0, cfg.Bridge.MaxSessions)
	assert.Equal(t, 50, cfg.Bridge.HistoryLimit)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("BRIDGE_MAX_SESSIONS", "16")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 16, cfg.Bridge.MaxSessions)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("BRIDGE_MAX_SCENE_VERTICES=1000\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("BRIDGE_MAX_SCENE_VERTICES") })

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.Bridge.MaxSceneVertices)
}

func TestBindValues(t *testing.T) {
	v := viper.New()
	bindValues(v, Config{}, "")

	assert.Equal(t, "8080", v.GetString("server.port"))
	assert.Equal(t, "0", v.GetString("bridge.max_sessions"))
	assert.Equal(t, ".cache/assets", v.GetString("storage.cache_dir"))
}
