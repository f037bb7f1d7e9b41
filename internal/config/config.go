package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	DefaultLogLevel      = "info"
	DefaultWindowDays    = 7
	DefaultTrendGroups   = 10
	DefaultRecentVolumes = 5
	DefaultPageSize      = 24
)

type Config struct {
	DBPath string `toml:"db_path"`
	Email  string `toml:"email"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	// views
	PageSize      int `toml:"page_size"`
	WindowDays    int `toml:"window_days"`
	TrendGroups   int `toml:"trend_groups"`
	RecentVolumes int `toml:"recent_volumes"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads the TOML file at path. A missing file is not an error and
// yields the defaults.
func Load(path string) (*Config, error) {
	c := &Config{}
	if _, err := toml.DecodeFile(path, c); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	c.applyDefaults()
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	if c.WindowDays <= 0 {
		c.WindowDays = DefaultWindowDays
	}
	if c.TrendGroups <= 0 {
		c.TrendGroups = DefaultTrendGroups
	}
	if c.RecentVolumes <= 0 {
		c.RecentVolumes = DefaultRecentVolumes
	}
}

// DefaultPath returns ~/.config/fitlog/config.toml
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "fitlog", "config.toml"), nil
}
