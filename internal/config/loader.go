package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	// ProjectConfigFile is looked up in the working directory and its parents.
	ProjectConfigFile = "consistency.yaml"
	UserConfigDir     = ".config/consistency"
	UserConfigFile    = "config.yaml"

	EnvDatabase = "CONSISTENCY_DB"
	EnvUser     = "CONSISTENCY_USER"
)

// Loader handles configuration loading with layered precedence.
type Loader struct {
	logger *slog.Logger

	// Overridable for tests.
	homeDir func() (string, error)
	workDir func() (string, error)
	getenv  func(string) string
}

func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		logger:  logger,
		homeDir: os.UserHomeDir,
		workDir: os.Getwd,
		getenv:  os.Getenv,
	}
}

// Load resolves configuration in order:
// 1. Defaults
// 2. User config (~/.config/consistency/config.yaml)
// 3. Project config (consistency.yaml in the current or a parent directory)
// 4. CONSISTENCY_DB and CONSISTENCY_USER
func (l *Loader) Load() (*Config, error) {
	config := DefaultConfig()
	if home, err := l.homeDir(); err == nil {
		config.Database.Path = filepath.Join(home, ".consistency", "consistency.db")
	}

	if path := l.UserConfigPath(); path != "" {
		if userConfig, err := LoadFromFile(path); err == nil {
			l.logger.Debug("Loaded user config", slog.String("path", path))
			config.Merge(userConfig)
		} else if !errors.Is(err, fs.ErrNotExist) {
			l.logger.Warn("Failed to load user config", slog.String("path", path), slog.String("error", err.Error()))
		}
	}

	if path := l.findProjectConfig(); path != "" {
		if projectConfig, err := LoadFromFile(path); err == nil {
			l.logger.Debug("Loaded project config", slog.String("path", path))
			config.Merge(projectConfig)
		} else {
			l.logger.Warn("Failed to load project config", slog.String("path", path), slog.String("error", err.Error()))
		}
	} else {
		l.logger.Debug("No project config found")
	}

	if v := l.getenv(EnvDatabase); v != "" {
		config.Database.Path = v
		l.logger.Debug("Database path from environment", slog.String("path", v))
	}
	if v := l.getenv(EnvUser); v != "" {
		config.User = v
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// UserConfigPath returns ~/.config/consistency/config.yaml, or "" when the
// home directory is unknown.
func (l *Loader) UserConfigPath() string {
	home, err := l.homeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}

// SaveUser persists c as the user-level config file.
func (l *Loader) SaveUser(c *Config) error {
	path := l.UserConfigPath()
	if err := c.SaveToFile(path); err != nil {
		return err
	}
	l.logger.Info("Saved user config", slog.String("path", path))
	return nil
}

// RememberUser records userID as the default profile in the user config
// file, keeping whatever else that file already holds.
func (l *Loader) RememberUser(userID string) error {
	path := l.UserConfigPath()
	if path == "" {
		return errors.New("no home directory for the user config")
	}
	c, err := LoadFromFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		c, err = &Config{}, nil
	}
	if err != nil {
		return err
	}
	c.User = userID
	return l.SaveUser(c)
}

func (l *Loader) findProjectConfig() string {
	cwd, err := l.workDir()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		path := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
