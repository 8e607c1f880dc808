package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/bliss/internal/config"
	"github.com/theirongolddev/bliss/internal/tui"
	"github.com/theirongolddev/bliss/internal/tui/theme"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive budget dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	return runInteractive(cmd, !config.Exists())
}

// runInteractive starts the TUI, optionally opening the setup form first.
func runInteractive(cmd *cobra.Command, setup bool) error {
	rt, err := newRuntime(true)
	if err != nil {
		return err
	}
	defer rt.close()

	sess, err := rt.newSession()
	if err != nil {
		return err
	}

	theme.SetActive(rt.cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	// Without this, lipgloss may default to Ascii profile (no colors)
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(cmd.Context(), tui.Options{
		Session:    sess,
		Journal:    rt.journal,
		Config:     rt.cfg,
		Logger:     rt.logger,
		ExportPath: rt.exportPath,
		Setup:      setup,
	})
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	if done, ok := final.(tui.App); ok && rt.exportPath != "" {
		n, err := done.ExportResult()
		if err != nil {
			return fmt.Errorf("exporting journal: %w", err)
		}
		rt.reportExport(n)
	}
	return nil
}
