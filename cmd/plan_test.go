package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/bliss/internal/budget"
	"github.com/theirongolddev/bliss/internal/config"
	"github.com/theirongolddev/bliss/internal/log"
)

func TestParseAssignment(t *testing.T) {
	tests := []struct {
		raw     string
		cat     string
		amount  string
		wantErr bool
	}{
		{raw: "Food=300", cat: "Food", amount: "300"},
		{raw: " Eating Out = 12.5", cat: "Eating Out", amount: "12.5"},
		{raw: "Food", wantErr: true},
		{raw: "=10", wantErr: true},
		{raw: "Food=-1", wantErr: true},
		{raw: "Food=abc", wantErr: true},
	}
	for _, tt := range tests {
		cat, amt, err := parseAssignment("expense", tt.raw)
		if tt.wantErr {
			if !errors.Is(err, budget.ErrValidation) {
				t.Errorf("%q: err = %v, want validation error", tt.raw, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error %v", tt.raw, err)
			continue
		}
		if cat != tt.cat || !amt.Equal(decimal.RequireFromString(tt.amount)) {
			t.Errorf("%q -> (%q, %s), want (%q, %s)", tt.raw, cat, amt, tt.cat, tt.amount)
		}
	}
}

func TestNewSessionUsesConfigDefaults(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.General.DefaultBudget = "1200"
	rt := &runtime{cfg: cfg, logger: log.Discard()}

	sess, err := rt.newSession()
	if err != nil {
		t.Fatalf("newSession: %v", err)
	}
	s := sess.State()
	if !s.Budget().Equal(decimal.NewFromInt(1200)) {
		t.Errorf("budget = %s, want 1200", s.Budget())
	}
	if got := len(s.Categories()); got != len(config.DefaultCategories) {
		t.Errorf("categories = %d, want %d", got, len(config.DefaultCategories))
	}
	// Four default categories share 1200 evenly.
	if got := s.Plan()["Food"]; !got.Equal(decimal.NewFromInt(300)) {
		t.Errorf("Food = %s, want 300", got)
	}
}

func TestNewSessionBudgetFlag(t *testing.T) {
	old := flagBudget
	t.Cleanup(func() { flagBudget = old })

	rt := &runtime{cfg: config.DefaultConfig(), logger: log.Discard()}

	flagBudget = "oops"
	if _, err := rt.newSession(); !errors.Is(err, budget.ErrValidation) {
		t.Fatalf("err = %v, want validation error", err)
	}

	flagBudget = "80"
	sess, err := rt.newSession()
	if err != nil {
		t.Fatalf("newSession: %v", err)
	}
	if !sess.State().Budget().Equal(decimal.NewFromInt(80)) {
		t.Errorf("budget = %s, want 80", sess.State().Budget())
	}
}

func TestRootCommandRunsTUI(t *testing.T) {
	if rootCmd.RunE == nil {
		t.Fatal("root command has no RunE")
	}
}

func TestNewSessionCategoriesFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("categories")
	old := flagCategories
	t.Cleanup(func() {
		flagCategories = old
		flag.Changed = false
	})

	if err := rootCmd.PersistentFlags().Set("categories", "Rent, ,Gym"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	rt := &runtime{cfg: config.DefaultConfig(), logger: log.Discard()}
	sess, err := rt.newSession()
	if err != nil {
		t.Fatalf("newSession: %v", err)
	}
	got := sess.State().Categories()
	if len(got) != 2 || got[0] != "Rent" || got[1] != "Gym" {
		t.Errorf("categories = %v, want [Rent Gym]", got)
	}
}

func TestNewRuntimeKeepsValidConfigValues(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, k := range []string{config.EnvBudget, config.EnvJournal, config.EnvLogLevel} {
		t.Setenv(k, "")
	}
	t.Setenv(config.EnvTheme, "neon")

	path := filepath.Join(dir, "bliss", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[general]\ndefault_budget = \"900\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	rt, err := newRuntime(true)
	if err != nil {
		t.Fatalf("newRuntime: %v", err)
	}
	defer rt.close()

	if rt.cfg.General.DefaultBudget != "900" {
		t.Errorf("budget = %q, want 900 from the file", rt.cfg.General.DefaultBudget)
	}
	if rt.cfg.Appearance.Theme != config.DefaultConfig().Appearance.Theme {
		t.Errorf("theme = %q, want the default", rt.cfg.Appearance.Theme)
	}
}
