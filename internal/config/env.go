package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override config file values.
const (
	EnvTheme    = "BLISS_THEME"
	EnvBudget   = "BLISS_BUDGET"
	EnvJournal  = "BLISS_JOURNAL"
	EnvLogLevel = "BLISS_LOG_LEVEL"
)

// LoadDotenv loads variables from the given .env files (default ".env")
// without overriding the existing environment. Missing files are ignored.
func LoadDotenv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
	}
	return nil
}

// ApplyEnv overrides cfg fields from BLISS_* environment variables.
func ApplyEnv(cfg *Config) {
	if v := env(EnvTheme); v != "" {
		cfg.Appearance.Theme = v
	}
	if v := env(EnvBudget); v != "" {
		cfg.General.DefaultBudget = v
	}
	if v := env(EnvJournal); v != "" {
		cfg.Journal.Path = v
	}
	if v := env(EnvLogLevel); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
