package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestValidate checks default filling and rejection of unsupported values.
func TestValidate(t *testing.T) {
	t.Parallel()

	// Empty config gets defaults.
	cfg := new(Config)

	require.NoError(t, Validate(cfg))
	require.Equal(t, BackendFile, cfg.StorageBackend)
	require.Equal(t, DefaultStateFilename, cfg.StateFile)
	require.Equal(t, DefaultDatabaseFilename, cfg.DatabaseFile)
	require.Equal(t, "info", cfg.LogLevel)

	// Bad backend.
	cfg = &Config{StorageBackend: "postgres"}
	require.Error(t, Validate(cfg))

	// Bad log level.
	cfg = &Config{LogLevel: "loud"}
	require.Error(t, Validate(cfg))

	// Nil config.
	require.Error(t, Validate(nil))
}

// TestLoad_MissingFileYieldsDefaults ensures the CLI works without prior setup.
func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")

	cfg := &Config{
		StorageBackend: BackendSQLite,
		DatabaseFile:   "alarms.db",
		LogLevel:       "debug",
		DisableRearm:   true,
	}

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}
