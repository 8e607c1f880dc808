package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/bliss/internal/tui/theme"
)

func withConfigHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, k := range []string{EnvTheme, EnvBudget, EnvJournal, EnvLogLevel} {
		t.Setenv(k, "")
	}
	return dir
}

func TestLoad_DefaultsWhenMissing(t *testing.T) {
	withConfigHome(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if Exists() {
		t.Error("Exists should be false before Save")
	}
	if strings.Join(cfg.General.DefaultCategories, ",") != "Food,Transportation,Utilities,Entertainment" {
		t.Errorf("categories = %v", cfg.General.DefaultCategories)
	}
	if cfg.NotificationDuration() != 5*time.Second {
		t.Errorf("NotificationDuration = %v", cfg.NotificationDuration())
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := withConfigHome(t)

	cfg := DefaultConfig()
	cfg.General.DefaultBudget = "2500.50"
	cfg.General.DefaultCategories = []string{"Rent", "Food"}
	cfg.Appearance.Theme = "tokyo-night"
	cfg.Journal.Path = filepath.Join(dir, "journal.db")

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists should be true after Save")
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.General.DefaultBudget != "2500.50" || got.Appearance.Theme != "tokyo-night" {
		t.Errorf("loaded = %+v", got)
	}
	if len(got.General.DefaultCategories) != 2 || got.Journal.Path != cfg.Journal.Path {
		t.Errorf("loaded = %+v", got)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	withConfigHome(t)
	t.Setenv(EnvTheme, "terminal")
	t.Setenv(EnvBudget, " 900 ")
	t.Setenv(EnvLogLevel, "DEBUG")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Appearance.Theme != "terminal" || cfg.General.DefaultBudget != "900" || cfg.Log.Level != "debug" {
		t.Errorf("env not applied: %+v", cfg)
	}
}

func TestLoad_RejectsInvalidFile(t *testing.T) {
	dir := withConfigHome(t)
	path := filepath.Join(dir, "bliss", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	body := "[appearance]\ntheme = \"neon\"\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := Load()
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
	if !strings.Contains(err.Error(), "Appearance.Theme") {
		t.Errorf("error should name the field: %v", err)
	}
}

func TestLoad_InvalidFieldsFallBackToDefaults(t *testing.T) {
	dir := withConfigHome(t)
	path := filepath.Join(dir, "bliss", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	body := "[general]\ndefault_budget = \"900\"\ndefault_categories = [\"Rent\", \" \"]\n" +
		"notification_seconds = 9\n\n[log]\nlevel = \"debug\"\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvTheme, "neon")

	cfg, err := Load()
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
	if cfg.Appearance.Theme != "flexoki-dark" {
		t.Errorf("theme = %q, want default", cfg.Appearance.Theme)
	}
	if got := cfg.General.DefaultCategories; len(got) != len(DefaultCategories) || got[0] != DefaultCategories[0] {
		t.Errorf("categories = %v, want defaults", got)
	}
	if cfg.General.DefaultBudget != "900" || cfg.General.NotificationSeconds != 9 || cfg.Log.Level != "debug" {
		t.Errorf("valid fields were dropped: %+v", cfg)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("sanitized config still invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"unknown theme", func(c *Config) { c.Appearance.Theme = "neon" }, false},
		{"blank category", func(c *Config) { c.General.DefaultCategories = []string{"Food", "  "} }, false},
		{"duplicate category", func(c *Config) { c.General.DefaultCategories = []string{"Food", "Food"} }, false},
		{"no categories", func(c *Config) { c.General.DefaultCategories = nil }, true},
		{"negative budget", func(c *Config) { c.General.DefaultBudget = "-1" }, false},
		{"text budget", func(c *Config) { c.General.DefaultBudget = "lots" }, false},
		{"zero notify", func(c *Config) { c.General.NotificationSeconds = 0 }, false},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, false},
		{"empty log level", func(c *Config) { c.Log.Level = "" }, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := Validate(cfg)
			if tc.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tc.ok && !errors.Is(err, ErrInvalid) {
				t.Errorf("err = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestThemeNamesMatchValidation(t *testing.T) {
	for _, name := range theme.Names() {
		cfg := DefaultConfig()
		cfg.Appearance.Theme = name
		if err := Validate(cfg); err != nil {
			t.Errorf("theme %q rejected: %v", name, err)
		}
	}
}

func TestLoadDotenv(t *testing.T) {
	withConfigHome(t)
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("BLISS_JOURNAL=/tmp/bliss-journal.db\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	os.Unsetenv(EnvJournal)
	t.Cleanup(func() { os.Unsetenv(EnvJournal) })

	if err := LoadDotenv(path, filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("LoadDotenv: %v", err)
	}
	cfg := DefaultConfig()
	ApplyEnv(&cfg)
	if cfg.Journal.Path != "/tmp/bliss-journal.db" {
		t.Errorf("Journal.Path = %q", cfg.Journal.Path)
	}
}
