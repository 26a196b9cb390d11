// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/thinktodo/tt/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from TOML files.
type Loader struct {
	dataDir       string // Path to the .tt directory
	globalConfDir string // Path to global config directory (e.g., ~/.config/tt)
}

// NewLoader creates a new Loader.
func NewLoader(dataDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global config
// directory. Useful for testing.
func NewLoaderWithGlobalDir(dataDir, globalConfDir string) *Loader {
	return &Loader{
		dataDir:       dataDir,
		globalConfDir: globalConfDir,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "tt")
}

// Load returns the merged configuration.
// Workdir config takes precedence over global config over defaults.
func (l *Loader) Load() (*domain.Config, error) {
	global, err := l.loadFile(filepath.Join(l.globalConfDir, domain.ConfigFileName))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	local, err := l.loadFile(filepath.Join(l.dataDir, domain.ConfigFileName))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	base := domain.NewDefaultConfig()
	if global != nil {
		base = mergeConfigs(base, global)
	}
	if local != nil {
		base = mergeConfigs(base, local)
	}
	return base, nil
}

// loadFile parses a single TOML config file.
func (l *Loader) loadFile(path string) (*domain.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg domain.Config
	if err := toml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// mergeConfigs overlays non-zero fields of over onto base.
func mergeConfigs(base, over *domain.Config) *domain.Config {
	merged := *base

	if over.DefaultEngine != "" {
		merged.DefaultEngine = over.DefaultEngine
	}
	if over.Monitor.IntervalSeconds > 0 {
		merged.Monitor.IntervalSeconds = over.Monitor.IntervalSeconds
	}
	if over.Server.Port > 0 {
		merged.Server.Port = over.Server.Port
	}
	if over.Log.Level != "" {
		merged.Log.Level = over.Log.Level
	}
	if len(over.Engines) > 0 {
		engines := make(map[string]string, len(merged.Engines)+len(over.Engines))
		for k, v := range merged.Engines {
			engines[k] = v
		}
		for k, v := range over.Engines {
			engines[k] = v
		}
		merged.Engines = engines
	}

	return &merged
}

// WriteDefault writes a commented default config file if none exists.
func (l *Loader) WriteDefault() error {
	path := filepath.Join(l.dataDir, domain.ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.MkdirAll(l.dataDir, 0o750); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	content := `# tt configuration
default_engine = "` + domain.DefaultEngineName + `"

[monitor]
interval_seconds = 3

[server]
port = 8707

[log]
level = "info"

# Per-engine command overrides:
# [engines]
# claude = "claude --dangerously-skip-permissions"
`
	return os.WriteFile(path, []byte(content), 0o640) //nolint:gosec // config readable by owner and group
}
