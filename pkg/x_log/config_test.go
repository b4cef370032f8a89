package x_log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadConfig tests the behavior of LoadConfig with different configurations.
func TestLoadConfig(t *testing.T) {
	t.Run("FileNotFound", func(t *testing.T) {
		cfg, err := LoadConfig("./non_existent_config.json")
		assert.NoError(t, err)
		assert.Equal(t, defaultConfig, *cfg)

		// the returned config is a copy
		cfg.Level = "error"
		assert.Equal(t, "info", defaultConfig.Level)
	})

	t.Run("ValidConfig", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "xlog.json")
		customConfig := `{
			"level": "debug",
			"log_file": "logs/test.log",
			"to_console": true,
			"to_file": true,
			"style": "light",
			"max_size": 20,
			"max_backups": 10,
			"max_age": 30,
			"compress": false
		}`
		require.NoError(t, os.WriteFile(path, []byte(customConfig), 0o644))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)

		assert.Equal(t, "debug", cfg.Level)
		assert.Equal(t, "logs/test.log", cfg.LogFile)
		assert.True(t, cfg.ToConsole)
		assert.True(t, cfg.ToFile)
		assert.Equal(t, "light", cfg.Style)
		assert.Equal(t, 20, cfg.MaxSize)
		assert.Equal(t, 10, cfg.MaxBackups)
		assert.Equal(t, 30, cfg.MaxAge)
		assert.False(t, cfg.Compress)
	})

	t.Run("PartialConfig", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "xlog.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"level":"warn"}`), 0o644))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "warn", cfg.Level)
		assert.Equal(t, defaultConfig.LogFile, cfg.LogFile)
		assert.Equal(t, defaultConfig.MaxSize, cfg.MaxSize)
		assert.True(t, cfg.ToConsole)
	})

	t.Run("InvalidConfig", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "xlog.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"level": "debug",`), 0o644))

		_, err := LoadConfig(path)
		assert.Error(t, err)
	})

	t.Run("EnvPath", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "xlog.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"style":"light"}`), 0o644))
		t.Setenv(EnvConfigPath, path)

		cfg, err := LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, "light", cfg.Style)
	})
}
