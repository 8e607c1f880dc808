package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/bliss/internal/budget"
	"github.com/theirongolddev/bliss/internal/config"
	"github.com/theirongolddev/bliss/internal/log"
	"github.com/theirongolddev/bliss/internal/tui/components"
	"github.com/theirongolddev/bliss/internal/tui/theme"
)

// setupValues holds the first-run form fields.
type setupValues struct {
	budget     string
	categories string
	theme      string
}

func newSetupForm(cfg config.Config) (*huh.Form, *setupValues) {
	v := &setupValues{
		budget:     cfg.General.DefaultBudget,
		categories: strings.Join(cfg.General.DefaultCategories, ", "),
		theme:      cfg.Appearance.Theme,
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to Budget Bliss").
				Description("Pick a starting budget and the categories you spend on.\nBoth can be changed at any time."),
			huh.NewInput().
				Title("Total budget").
				Placeholder("0.00").
				Value(&v.budget).
				Validate(func(s string) error {
					_, err := budget.ParseAmount("budget", s)
					return err
				}),
			huh.NewInput().
				Title("Categories").
				Description("Comma separated, in the order you want them listed.").
				Value(&v.categories).
				Validate(validateCategoryList),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(huh.NewOptions(theme.Names()...)...).
				Value(&v.theme),
		),
	).WithTheme(huh.ThemeBase16()).WithShowHelp(true)

	return form, v
}

func validateCategoryList(s string) error {
	seen := make(map[string]bool)
	for _, c := range splitCategories(s) {
		if seen[c] {
			return fmt.Errorf("%q is listed twice", c)
		}
		seen[c] = true
	}
	return nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		vals := a.setupVals
		a.needSetup = false
		a.setupForm = nil
		a.setupVals = nil
		return a.finishSetup(vals)
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		a.setupVals = nil
		return a, nil
	}

	return a, cmd
}

// finishSetup applies the setup answers to the running session and saves
// them as the starting values of future sessions.
func (a App) finishSetup(v *setupValues) (App, tea.Cmd) {
	amt, err := budget.ParseAmount("budget", v.budget)
	if err != nil {
		return a, a.notifyError(err)
	}
	cats := splitCategories(v.categories)

	s := a.sess.State()
	acts := []budget.Action{budget.SetBudget{Amount: amt}}
	wanted := make(map[string]bool, len(cats))
	for _, c := range cats {
		wanted[c] = true
	}
	for _, c := range s.Categories() {
		if !wanted[c] {
			acts = append(acts, budget.DeleteCategory{Name: c})
		}
	}
	for _, c := range cats {
		if !s.HasCategory(c) {
			acts = append(acts, budget.AddCategory{Name: c})
		}
	}

	cmds := []tea.Cmd{a.loadJournalCmd()}
	if _, err := a.sess.DispatchAll(a.ctx, acts...); err != nil {
		cmds = append(cmds, a.notifyError(err))
		return a, tea.Batch(cmds...)
	}

	cfg := a.cfg
	cfg.General.DefaultBudget = amt.String()
	cfg.General.DefaultCategories = cats
	cfg.Appearance.Theme = v.theme
	theme.SetActive(v.theme)

	if err := config.Save(cfg); err != nil {
		a.logger.Warn("saving setup failed", log.FieldError, err.Error())
		cmds = append(cmds, a.notify(components.NoticeWarning,
			"Could not save config: "+err.Error()+". Settings apply to this session only."))
		return a, tea.Batch(cmds...)
	}
	a.cfg = cfg
	cmds = append(cmds, a.notify(components.NoticeSuccess, "All set! Saved to "+config.ConfigPath()))
	return a, tea.Batch(cmds...)
}

func (a App) viewSetup() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	body := logoStyle.Render("◈ Budget Bliss") + subtitleStyle.Render(" · first run") + "\n\n" + a.setupForm.View()
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(body),
		lipgloss.WithWhitespaceBackground(t.Background))
}
