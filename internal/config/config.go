// Package config loads the tracker's settings from YAML files and the
// environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/consistency/internal/calendar"
	"gopkg.in/yaml.v3"
)

// Config is the complete tracker configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	// User is the profile id commands act on when --user is omitted.
	User     string         `yaml:"user,omitempty"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Log      LogConfig      `yaml:"log"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

type DatabaseConfig struct {
	// Path is the SQLite file; ":memory:" keeps everything in process.
	Path string `yaml:"path"`
}

// DefaultsConfig seeds new profiles created by `consistency init`.
type DefaultsConfig struct {
	Timezone     string   `yaml:"timezone"`
	CheckInTimes []string `yaml:"check_in_times"`
}

type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
}

type MetricsConfig struct {
	// Textfile, when set, receives use-case metrics in the node exporter
	// textfile format after every command.
	Textfile string `yaml:"textfile,omitempty"`
}

// DefaultConfig returns a Config with the database under ~/.consistency.
func DefaultConfig() *Config {
	dbPath := filepath.Join(".consistency", "consistency.db")
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, dbPath)
	}
	return &Config{
		Database: DatabaseConfig{Path: dbPath},
		Defaults: DefaultsConfig{
			Timezone:     "UTC",
			CheckInTimes: append([]string(nil), calendar.DefaultCheckInTimes...),
		},
		Log: LogConfig{Level: "warn"},
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if _, err := calendar.LoadLocation(c.Defaults.Timezone); err != nil {
		return fmt.Errorf("defaults.timezone: %w", err)
	}
	if _, err := calendar.NewSchedule(c.Defaults.CheckInTimes); err != nil {
		return fmt.Errorf("defaults.check_in_times: %w", err)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// ParseLevel maps a config level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("unknown level %q", s)
	}
	return l, nil
}

// LoadFromFile loads configuration from a YAML file on top of the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return config, nil
}

// SaveToFile writes the configuration as YAML, creating parent directories.
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Merge copies the non-zero values of other onto c.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Database.Path != "" {
		c.Database.Path = other.Database.Path
	}
	if other.User != "" {
		c.User = other.User
	}
	if other.Defaults.Timezone != "" {
		c.Defaults.Timezone = other.Defaults.Timezone
	}
	if len(other.Defaults.CheckInTimes) > 0 {
		c.Defaults.CheckInTimes = other.Defaults.CheckInTimes
	}
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
	if other.Metrics.Textfile != "" {
		c.Metrics.Textfile = other.Metrics.Textfile
	}
}
