package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/bliss/internal/config"
	"github.com/theirongolddev/bliss/internal/log"
	"github.com/theirongolddev/bliss/internal/tui/components"
	"github.com/theirongolddev/bliss/internal/tui/theme"
)

const (
	settingsFieldTheme = iota
	settingsFieldNotification
	settingsFieldBudget
	settingsFieldCategories
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
	saved   bool  // flash "saved" message
	saveErr error // non-nil if last save failed
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 50
	return ti
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	a.settings.editing = true
	a.settings.saved = false

	ti := newSettingsInput()
	switch a.settings.cursor {
	case settingsFieldTheme:
		ti.Placeholder = strings.Join(theme.Names(), ", ")
		ti.SetValue(a.cfg.Appearance.Theme)
	case settingsFieldNotification:
		ti.Placeholder = "5 (seconds, 1-60)"
		ti.SetValue(strconv.Itoa(a.cfg.General.NotificationSeconds))
	case settingsFieldBudget:
		ti.Placeholder = "0.00"
		ti.SetValue(a.cfg.General.DefaultBudget)
	case settingsFieldCategories:
		ti.Placeholder = "Food, Transportation, Utilities"
		ti.SetValue(strings.Join(a.cfg.General.DefaultCategories, ", "))
	}

	ti.Focus()
	a.settings.input = ti
	return a, ti.Cursor.BlinkCmd()
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.settingsSave()
		a.settings.editing = false
		a.settings.saved = a.settings.saveErr == nil
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

// settingsSave writes the edited field. The config is validated on save,
// so a bad value leaves both the file and the running app unchanged.
func (a *App) settingsSave() {
	cfg := a.cfg
	cfg.General.DefaultCategories = append([]string(nil), a.cfg.General.DefaultCategories...)
	val := strings.TrimSpace(a.settings.input.Value())

	switch a.settings.cursor {
	case settingsFieldTheme:
		cfg.Appearance.Theme = val
	case settingsFieldNotification:
		n, err := strconv.Atoi(val)
		if err != nil {
			a.settings.saveErr = fmt.Errorf("notification seconds %q: not a number", val)
			return
		}
		cfg.General.NotificationSeconds = n
	case settingsFieldBudget:
		cfg.General.DefaultBudget = val
	case settingsFieldCategories:
		cfg.General.DefaultCategories = splitCategories(val)
	}

	if err := config.Save(cfg); err != nil {
		a.settings.saveErr = err
		a.logger.Warn("saving settings failed", log.FieldError, err.Error())
		return
	}
	a.settings.saveErr = nil
	a.cfg = cfg
	a.noticeTTL = cfg.NotificationDuration()
	theme.SetActive(cfg.Appearance.Theme)
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	cfg := a.cfg

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	type field struct {
		label string
		value string
	}

	cats := "(none)"
	if len(cfg.General.DefaultCategories) > 0 {
		cats = strings.Join(cfg.General.DefaultCategories, ", ")
	}
	fields := []field{
		{"Theme", cfg.Appearance.Theme},
		{"Notice Duration", fmt.Sprintf("%ds", cfg.General.NotificationSeconds)},
		{"Starting Budget", cfg.General.DefaultBudget},
		{"Starting Categories", cats},
	}

	var formBody strings.Builder
	for i, f := range fields {
		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-20s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-20s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker)
			formBody.WriteString(label)
			formBody.WriteString(value)
			usedWidth := lipgloss.Width(marker) + lipgloss.Width(label) + lipgloss.Width(value)
			if padLen := components.CardInnerWidth(cw) - usedWidth; padLen > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", padLen)))
			}
		} else {
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-20s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Save failed: %s", a.settings.saveErr)))
	} else if a.settings.saved {
		formBody.WriteString("\n")
		formBody.WriteString(greenStyle.Render("Saved!"))
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit  [Esc] cancel"))

	// Session info card
	journal := "disabled"
	if a.journal != nil {
		journal = fmt.Sprintf("in memory, %d entries", len(a.recent))
		if a.exportPath != "" {
			journal += ", exported to " + a.exportPath + " on quit"
		}
	}
	var infoBody strings.Builder
	infoBody.WriteString(labelStyle.Render("Session:      ") + valueStyle.Render(a.sess.ID()) + "\n")
	infoBody.WriteString(labelStyle.Render("Journal:      ") + valueStyle.Render(journal) + "\n")
	infoBody.WriteString(labelStyle.Render("Config file:  ") + valueStyle.Render(config.ConfigPath()) + "\n")
	infoBody.WriteString(labelStyle.Render("Starting values apply to the next session."))

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("Session", infoBody.String(), cw))

	return b.String()
}

// splitCategories parses a comma-separated category list, dropping blanks.
func splitCategories(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
