// Package config loads the novanotes.toml settings file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Storage Storage `toml:"storage"`
	Log     Log     `toml:"log"`
	Focus   Focus   `toml:"focus"`
	Alerts  Alerts  `toml:"alerts"`
	Export  Export  `toml:"export"`
}

type Storage struct {
	// Path is the SQLite database file.
	Path string `toml:"path"`
}

type Log struct {
	Path  string `toml:"path"`
	Level string `toml:"level"` // debug, info, warn or error
}

type Focus struct {
	Minutes int `toml:"minutes"`
}

type Alerts struct {
	// Interval is how often due dates are rescanned, as a Go duration.
	Interval string `toml:"interval"`
}

type Export struct {
	Dir string `toml:"dir"`
}

// Dir returns ~/.config/novanotes.
func Dir() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get config directory: %w", err)
	}
	return filepath.Join(cfg, "novanotes"), nil
}

// DefaultPath returns ~/.config/novanotes/config.toml.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Default returns the configuration used when no file exists.
func Default() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("get home directory: %w", err)
	}
	return &Config{
		Storage: Storage{Path: filepath.Join(dir, "novanotes.db")},
		Log:     Log{Path: filepath.Join(dir, "novanotes.log"), Level: "info"},
		Focus:   Focus{Minutes: 25},
		Alerts:  Alerts{Interval: "1m"},
		Export:  Export{Dir: home},
	}, nil
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	var file Config
	meta, err := toml.Decode(string(data), &file)
	if err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	overrideString(meta.IsDefined("storage", "path"), &cfg.Storage.Path, file.Storage.Path)
	overrideString(meta.IsDefined("log", "path"), &cfg.Log.Path, file.Log.Path)
	overrideString(meta.IsDefined("log", "level"), &cfg.Log.Level, file.Log.Level)
	overrideString(meta.IsDefined("alerts", "interval"), &cfg.Alerts.Interval, file.Alerts.Interval)
	overrideString(meta.IsDefined("export", "dir"), &cfg.Export.Dir, file.Export.Dir)
	if meta.IsDefined("focus", "minutes") {
		cfg.Focus.Minutes = file.Focus.Minutes
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

func overrideString(defined bool, dst *string, value string) {
	if defined {
		*dst = strings.TrimSpace(value)
	}
}

func (c *Config) validate() error {
	if c.Focus.Minutes <= 0 {
		return fmt.Errorf("focus.minutes must be positive, got %d", c.Focus.Minutes)
	}
	d, err := time.ParseDuration(c.Alerts.Interval)
	if err != nil {
		return fmt.Errorf("alerts.interval: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("alerts.interval must be positive, got %s", c.Alerts.Interval)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level)
	}
	return nil
}

// FocusDuration is the length of one focus session.
func (c *Config) FocusDuration() time.Duration {
	return time.Duration(c.Focus.Minutes) * time.Minute
}

// AlertInterval is the due-date rescan period. Load has already validated it.
func (c *Config) AlertInterval() time.Duration {
	d, err := time.ParseDuration(c.Alerts.Interval)
	if err != nil || d <= 0 {
		return time.Minute
	}
	return d
}
