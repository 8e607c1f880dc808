package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/bliss/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	if err := config.LoadDotenv(); err != nil {
		return fmt.Errorf("loading .env: %w", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Starting budget:     %s\n", cfg.General.DefaultBudget)
	fmt.Printf("    Starting categories: %s\n", strings.Join(cfg.General.DefaultCategories, ", "))
	fmt.Printf("    Notice duration:     %s\n", cfg.NotificationDuration())
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Journal]")
	if cfg.Journal.Path != "" {
		fmt.Printf("    Export path: %s\n", cfg.Journal.Path)
	} else {
		fmt.Println("    Export path: not set (journal stays in memory)")
	}
	fmt.Println()

	fmt.Println("  [Log]")
	fmt.Printf("    Level: %s\n", cfg.Log.Level)
	if cfg.Log.File != "" {
		fmt.Printf("    File:  %s\n", cfg.Log.File)
	}
	fmt.Println()

	fmt.Printf("  Environment overrides: %s, %s, %s, %s\n",
		config.EnvTheme, config.EnvBudget, config.EnvJournal, config.EnvLogLevel)
	fmt.Println("  Run `bliss setup` to reconfigure.")
	return nil
}
