// Package config loads and saves user preferences from the XDG config dir.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all bliss configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Appearance AppearanceConfig `toml:"appearance"`
	Journal    JournalConfig    `toml:"journal"`
	Log        LogConfig        `toml:"log"`
}

// GeneralConfig holds the starting budget and notification preferences.
type GeneralConfig struct {
	DefaultBudget       string   `toml:"default_budget" validate:"amount"`
	DefaultCategories   []string `toml:"default_categories" validate:"unique,dive,notblank"`
	NotificationSeconds int      `toml:"notification_seconds" validate:"min=1,max=60"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme" validate:"oneof=flexoki-dark catppuccin-mocha tokyo-night terminal"`
}

// JournalConfig sets where the audit journal is exported on exit.
// An empty path keeps the journal in memory only.
type JournalConfig struct {
	Path string `toml:"path,omitempty"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level" validate:"omitempty,oneof=debug info warn error"`
	File  string `toml:"file,omitempty"`
}

// DefaultCategories are the categories a fresh session starts with.
var DefaultCategories = []string{"Food", "Transportation", "Utilities", "Entertainment"}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	cats := make([]string, len(DefaultCategories))
	copy(cats, DefaultCategories)
	return Config{
		General: GeneralConfig{
			DefaultBudget:       "0",
			DefaultCategories:   cats,
			NotificationSeconds: 5,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// NotificationDuration returns how long transient notices stay on screen.
func (c Config) NotificationDuration() time.Duration {
	if c.General.NotificationSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.General.NotificationSeconds) * time.Second
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "bliss")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "bliss")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
// Environment overrides are applied after the file and the result is
// validated. On ErrInvalid the returned config keeps the valid values and
// falls back to defaults for the rest.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err == nil {
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
	}

	ApplyEnv(&cfg)
	return Sanitize(cfg)
}

// Save validates cfg and writes it to disk.
func Save(cfg Config) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
