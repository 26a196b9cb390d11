package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thinktodo/tt/internal/domain"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ConfigFileName), []byte(content), 0o600))
}

func TestLoader_Load_DefaultsWhenNoFiles(t *testing.T) {
	l := NewLoaderWithGlobalDir(filepath.Join(t.TempDir(), ".tt"), filepath.Join(t.TempDir(), "global"))

	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.DefaultEngine)
	assert.Equal(t, 3, cfg.Monitor.IntervalSeconds)
	assert.Equal(t, 8707, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoader_Load_GlobalOverridesDefaults(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), ".tt")
	globalDir := filepath.Join(t.TempDir(), "global")
	writeConfig(t, globalDir, "default_engine = \"claude\"\n\n[server]\nport = 9000\n")

	l := NewLoaderWithGlobalDir(dataDir, globalDir)

	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, "claude", cfg.DefaultEngine)
	assert.Equal(t, 9000, cfg.Server.Port)
	// Untouched fields keep their defaults.
	assert.Equal(t, 3, cfg.Monitor.IntervalSeconds)
}

func TestLoader_Load_LocalOverridesGlobal(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), ".tt")
	globalDir := filepath.Join(t.TempDir(), "global")
	writeConfig(t, globalDir, "default_engine = \"claude\"\n\n[log]\nlevel = \"debug\"\n")
	writeConfig(t, dataDir, "default_engine = \"opencode\"\n")

	l := NewLoaderWithGlobalDir(dataDir, globalDir)

	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, "opencode", cfg.DefaultEngine)
	// Global settings not shadowed locally still apply.
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoader_Load_EngineOverridesMerge(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), ".tt")
	globalDir := filepath.Join(t.TempDir(), "global")
	writeConfig(t, globalDir, "[engines]\nclaude = \"claude --global-flag\"\ngemini = \"gemini --global\"\n")
	writeConfig(t, dataDir, "[engines]\nclaude = \"claude --local-flag\"\n")

	l := NewLoaderWithGlobalDir(dataDir, globalDir)

	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, "claude --local-flag", cfg.Engines["claude"])
	assert.Equal(t, "gemini --global", cfg.Engines["gemini"])
}

func TestLoader_Load_MalformedFile(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), ".tt")
	writeConfig(t, dataDir, "not [valid toml")

	l := NewLoaderWithGlobalDir(dataDir, filepath.Join(t.TempDir(), "global"))

	_, err := l.Load()
	assert.Error(t, err)
}

func TestLoader_WriteDefault(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), ".tt")
	l := NewLoaderWithGlobalDir(dataDir, filepath.Join(t.TempDir(), "global"))

	require.NoError(t, l.WriteDefault())
	assert.FileExists(t, filepath.Join(dataDir, domain.ConfigFileName))

	// The starter file parses back to the defaults.
	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.DefaultEngine)

	// Re-running does not clobber an edited file.
	writeConfig(t, dataDir, "default_engine = \"claude\"\n")
	require.NoError(t, l.WriteDefault())
	cfg, err = l.Load()
	require.NoError(t, err)
	assert.Equal(t, "claude", cfg.DefaultEngine)
}
