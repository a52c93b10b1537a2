package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvOverrides(t *testing.T) {
	t.Run("HABIT_STORAGE replaces storage path", func(t *testing.T) {
		t.Setenv(EnvStorage, "/tmp/custom.json")
		t.Setenv(EnvLogLevel, "")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "/tmp/custom.json", cfg.Storage.Path)
		assert.Equal(t, "warn", cfg.Logging.Level)
	})

	t.Run("HABIT_LOG_LEVEL replaces level", func(t *testing.T) {
		t.Setenv(EnvStorage, "")
		t.Setenv(EnvLogLevel, "debug")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "habits.json", cfg.Storage.Path)
		assert.Equal(t, "debug", cfg.Logging.Level)
	})

	t.Run("env wins over file", func(t *testing.T) {
		t.Setenv(EnvStorage, "/from/env.json")
		t.Setenv(EnvLogLevel, "")

		path := filepath.Join(t.TempDir(), "habit.yaml")
		require.NoError(t, os.WriteFile(path, []byte("storage:\n  path: /from/file.json\n"), 0644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "/from/env.json", cfg.Storage.Path)
	})

	t.Run("env applies without a file", func(t *testing.T) {
		t.Setenv(EnvStorage, "/from/env.json")
		t.Setenv(EnvLogLevel, "")

		cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		require.NoError(t, err)
		assert.Equal(t, "/from/env.json", cfg.Storage.Path)
	})

	t.Run("invalid env level fails validation", func(t *testing.T) {
		t.Setenv(EnvLogLevel, "chatty")

		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
}

func TestDefaultConfigPath(t *testing.T) {
	t.Run("HABIT_CONFIG wins", func(t *testing.T) {
		t.Setenv(EnvConfig, "/etc/habit.yaml")
		assert.Equal(t, "/etc/habit.yaml", DefaultConfigPath())
	})

	t.Run("falls back to working directory", func(t *testing.T) {
		t.Setenv(EnvConfig, "")
		assert.Equal(t, DefaultConfigFile, filepath.Base(DefaultConfigPath()))
	})
}
