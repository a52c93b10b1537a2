package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Environment variables read by applyEnvOverrides and DefaultConfigPath.
const (
	EnvStorage  = "HABIT_STORAGE"
	EnvLogLevel = "HABIT_LOG_LEVEL"
	EnvConfig   = "HABIT_CONFIG"
)

// DefaultConfigFile is the config file looked up in the working directory.
const DefaultConfigFile = "habit.yaml"

// DefaultStorageFile is the habits file used when nothing else is configured.
const DefaultStorageFile = "habits.json"

// Config holds all habit configuration.
type Config struct {
	// Storage file location
	Storage StorageConfig `yaml:"storage"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`

	// Reporting windows
	Tracking TrackingConfig `yaml:"tracking"`
}

// StorageConfig locates the habits file.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// TrackingConfig tunes how history is summarized.
type TrackingConfig struct {
	// Days of history shown as "recent" (default: 7)
	RecentWindowDays int `yaml:"recent_window_days"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Path: DefaultStorageFile,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
		Tracking: TrackingConfig{
			RecentWindowDays: 7,
		},
	}
}

// DefaultConfigPath returns $HABIT_CONFIG, or habit.yaml in the working directory.
func DefaultConfigPath() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	cwd, err := os.Getwd()
	if err != nil {
		return DefaultConfigFile
	}
	return filepath.Join(cwd, DefaultConfigFile)
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ErrExists is returned by Save when the file is present and overwrite is off.
var ErrExists = errors.New("config file already exists")

// configHeader is written above the YAML body.
const configHeader = "# habit configuration. Environment overrides: " + EnvStorage + ", " + EnvLogLevel + ".\n"

// Save writes c to path as YAML, creating parent directories. An existing
// file is replaced only when overwrite is set.
func (c *Config) Save(path string, overwrite bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	body, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", ErrExists, path)
		}
		return fmt.Errorf("failed to write config: %w", err)
	}
	_, err = f.WriteString(configHeader)
	if err == nil {
		_, err = f.Write(body)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if path := os.Getenv(EnvStorage); path != "" {
		c.Storage.Path = path
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Logging.Level = level
	}
}

// ValidLogLevels lists the accepted logging levels.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Storage.Path == "" {
		return fmt.Errorf("storage path not configured (set storage.path or %s)", EnvStorage)
	}

	validLevel := false
	for _, l := range ValidLogLevels {
		if c.Logging.Level == l {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.Logging.Level, ValidLogLevels)
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid log format: %s (valid: console, json)", c.Logging.Format)
	}

	if c.Tracking.RecentWindowDays < 1 {
		return fmt.Errorf("tracking.recent_window_days must be at least 1, got %d", c.Tracking.RecentWindowDays)
	}
	return nil
}

// GetRecentWindow returns the recent window in days, falling back to 7.
func (c *Config) GetRecentWindow() int {
	if c.Tracking.RecentWindowDays < 1 {
		return 7
	}
	return c.Tracking.RecentWindowDays
}
