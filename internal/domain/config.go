package domain

// Config represents the application configuration loaded from TOML.
type Config struct {
	DefaultEngine string            `toml:"default_engine"`
	Engines       map[string]string `toml:"engines"` // engine tag -> command override
	Monitor       MonitorConfig     `toml:"monitor"`
	Server        ServerConfig      `toml:"server"`
	Log           LogConfig         `toml:"log"`
}

// MonitorConfig holds completion-detector settings from [monitor].
type MonitorConfig struct {
	IntervalSeconds int `toml:"interval_seconds"` // Poll cadence
}

// ServerConfig holds web API settings from [server].
type ServerConfig struct {
	Port int `toml:"port"`
}

// LogConfig holds logging settings from [log].
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
}

// NewDefaultConfig returns the configuration used when no file exists.
func NewDefaultConfig() *Config {
	return &Config{
		DefaultEngine: DefaultEngineName,
		Engines:       map[string]string{},
		Monitor:       MonitorConfig{IntervalSeconds: 3},
		Server:        ServerConfig{Port: 8707},
		Log:           LogConfig{Level: "info"},
	}
}
