package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all client configuration, read via Viper from environment
// variables (STEELDESK_ prefix) and optionally ~/.steeldesk/config.yaml.
type Config struct {
	API     APIConfig
	Storage StorageConfig
	Export  ExportConfig
	Log     LogConfig
}

// APIConfig configures the backend connection.
type APIConfig struct {
	BaseURL   string // backend base URL including the /api prefix
	TimeoutMs int    // per-request timeout
}

// StorageConfig configures the durable local credential store.
type StorageConfig struct {
	Path string // SQLite file path; ":memory:" for tests
}

// ExportConfig configures where downloaded CSV exports are written.
type ExportConfig struct {
	Dir string
}

// LogConfig configures diagnostic logging. The TUI owns the terminal, so
// logs go to a file.
type LogConfig struct {
	Level string // trace, debug, info, warn, error
	File  string // empty disables file logging
}

// DataDir returns the default steeldesk data directory (~/.steeldesk),
// creating it if necessary.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	dir := filepath.Join(home, ".steeldesk")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating data directory: %w", err)
	}
	return dir, nil
}

// Load reads configuration from environment and optional config file,
// falling back to defaults for any unset values.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("STEELDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	dataDir, err := DataDir()
	if err != nil {
		return Config{}, err
	}

	v.SetDefault("api.base_url", "https://iron-steel-business.onrender.com/api")
	v.SetDefault("api.timeout_ms", 15000)
	v.SetDefault("storage.path", filepath.Join(dataDir, "steeldesk.db"))
	v.SetDefault("export.dir", ".")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", filepath.Join(dataDir, "steeldesk.log"))

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dataDir)
	if err := v.ReadInConfig(); err != nil {
		// The config file is optional; anything else is a real failure.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := Config{
		API: APIConfig{
			BaseURL:   strings.TrimRight(v.GetString("api.base_url"), "/"),
			TimeoutMs: v.GetInt("api.timeout_ms"),
		},
		Storage: StorageConfig{
			Path: v.GetString("storage.path"),
		},
		Export: ExportConfig{
			Dir: v.GetString("export.dir"),
		},
		Log: LogConfig{
			Level: v.GetString("log.level"),
			File:  v.GetString("log.file"),
		},
	}

	if cfg.API.BaseURL == "" {
		return Config{}, fmt.Errorf("api.base_url must not be empty")
	}
	if cfg.API.TimeoutMs <= 0 {
		return Config{}, fmt.Errorf("api.timeout_ms must be positive")
	}

	return cfg, nil
}
