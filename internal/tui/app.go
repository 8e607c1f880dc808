// Package tui provides the interactive Bubble Tea interface for bliss.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/bliss/internal/cli"
	"github.com/theirongolddev/bliss/internal/config"
	"github.com/theirongolddev/bliss/internal/log"
	"github.com/theirongolddev/bliss/internal/model"
	"github.com/theirongolddev/bliss/internal/pipeline"
	"github.com/theirongolddev/bliss/internal/session"
	"github.com/theirongolddev/bliss/internal/store"
	"github.com/theirongolddev/bliss/internal/tui/components"
	"github.com/theirongolddev/bliss/internal/tui/theme"
)

// journalLoadedMsg carries this session's journal entries after a dispatch.
type journalLoadedMsg struct {
	entries []model.JournalEntry
	err     error
}

// exportDoneMsg is sent when the journal export on quit finishes.
type exportDoneMsg struct {
	count int
	err   error
}

// Options configures a new App.
type Options struct {
	Session *session.Session
	// Journal may be nil; the History tab then shows no journal.
	Journal *store.Journal
	Config  config.Config
	Logger  *log.Logger
	// ExportPath, when set, receives the journal on quit.
	ExportPath string
	// Setup shows the first-run form before the dashboard.
	Setup bool
}

// App is the root Bubble Tea model.
type App struct {
	ctx        context.Context
	sess       *session.Session
	journal    *store.Journal
	cfg        config.Config
	logger     *log.Logger
	exportPath string

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Action form (huh)
	form     *huh.Form
	formVals *formValues

	// Transient notification
	notice    notice
	noticeSeq int
	noticeTTL time.Duration

	// Journal entries of this session, newest last
	recent     []model.JournalEntry
	journalErr error

	// Per-tab state
	settings settingsState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *setupValues
	needSetup bool

	// Quit with journal export
	exporting bool
	spinner   spinner.Model
	exported  int
	exportErr error
}

// Tab indexes, matching components.Tabs.
const (
	tabPlan = iota
	tabLedger
	tabCharts
	tabHistory
	tabSettings
)

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180

	minContentHeight = 5 // minimum content area height
)

// NewApp creates a new TUI app model.
func NewApp(ctx context.Context, opts Options) App {
	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	a := App{
		ctx:        ctx,
		sess:       opts.Session,
		journal:    opts.Journal,
		cfg:        opts.Config,
		logger:     logger.WithComponent(log.ComponentTUI),
		exportPath: opts.ExportPath,
		noticeTTL:  opts.Config.NotificationDuration(),
		needSetup:  opts.Setup,
		spinner:    sp,
	}
	if a.needSetup {
		a.setupForm, a.setupVals = newSetupForm(opts.Config)
	}
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnableMouseCellMotion,
		a.loadJournalCmd(),
	}
	if a.needSetup && a.setupForm != nil {
		cmds = append(cmds, a.setupForm.Init())
	}
	return tea.Batch(cmds...)
}

// Session returns the session the app dispatches to.
func (a App) Session() *session.Session { return a.sess }

// ExportResult reports the journal export performed on quit.
func (a App) ExportResult() (int, error) { return a.exported, a.exportErr }

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(a.formWidth()).WithHeight(msg.Height)
		}
		if a.form != nil {
			a.form = a.form.WithWidth(a.formWidth())
		}
		return a, nil

	case tea.MouseMsg:
		if a.showHelp || a.form != nil || a.needSetup || a.exporting {
			return a, nil
		}
		if msg.Button == tea.MouseButtonLeft && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 && tab < len(components.Tabs) {
				a.activeTab = tab
			}
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)

	case noticeExpiredMsg:
		return a.expireNotice(msg), nil

	case journalLoadedMsg:
		a.journalErr = msg.err
		if msg.err == nil {
			a.recent = msg.entries
		}
		return a, nil

	case exportDoneMsg:
		a.exported = msg.count
		a.exportErr = msg.err
		return a, tea.Quit

	case spinner.TickMsg:
		if a.exporting {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward everything else (cursor blinks etc.) to an open form
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.form != nil {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		if a.exporting {
			return a, tea.Quit
		}
		return a.quit()
	}
	if a.exporting {
		return a, nil
	}

	// First-run setup wizard intercepts all keys
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	// An open action form owns the keyboard; esc cancels it
	if a.form != nil {
		if key == "esc" {
			return a.closeForm(), nil
		}
		return a.updateForm(msg)
	}

	// Settings tab has its own keybindings (text input)
	if a.activeTab == tabSettings && a.settings.editing {
		return a.updateSettingsInput(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	if key == "esc" {
		a.dismissNotice()
		return a, nil
	}

	// Settings tab navigation (non-editing mode)
	if a.activeTab == tabSettings {
		switch key {
		case "j", "down":
			if a.settings.cursor < settingsFieldCount-1 {
				a.settings.cursor++
			}
			return a, nil
		case "k", "up":
			if a.settings.cursor > 0 {
				a.settings.cursor--
			}
			return a, nil
		case "enter":
			return a.settingsStartEdit()
		}
	}

	switch key {
	case "q":
		return a.quit()

	// Actions
	case "b":
		return a.openForm(formSetBudget)
	case "i":
		return a.openForm(formIncreaseBudget)
	case "a":
		return a.openForm(formAddCategory)
	case "d":
		return a.openForm(formDeleteCategory)
	case "n":
		return a.openForm(formExpense)
	case "u":
		return a.openForm(formCustomBudgets)
	case "z":
		return a.resetOverrides()

	// Tab navigation
	case "left":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	}

	if r := msg.Runes; len(r) == 1 {
		if idx := components.TabIdxByKey(r[0]); idx >= 0 {
			a.activeTab = idx
		}
	}
	return a, nil
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		vals := a.formVals
		a = a.closeForm()
		return a.submitForm(vals)
	case huh.StateAborted:
		return a.closeForm(), nil
	}
	return a, cmd
}

// quit exits, exporting the journal first when an export path is set.
func (a App) quit() (tea.Model, tea.Cmd) {
	if a.exportPath == "" || a.journal == nil {
		return a, tea.Quit
	}
	a.exporting = true
	return a, tea.Batch(a.spinner.Tick, a.exportCmd())
}

func (a App) exportCmd() tea.Cmd {
	j, path, ctx := a.journal, a.exportPath, a.ctx
	return func() tea.Msg {
		n, err := j.Export(ctx, path)
		return exportDoneMsg{count: n, err: err}
	}
}

func (a App) loadJournalCmd() tea.Cmd {
	if a.journal == nil || a.sess == nil {
		return nil
	}
	j, id, ctx := a.journal, a.sess.ID(), a.ctx
	return func() tea.Msg {
		entries, err := j.Entries(ctx, id)
		return journalLoadedMsg{entries: entries, err: err}
	}
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if a.exporting {
		return a.viewExporting()
	}

	// First-run setup wizard
	if a.needSetup && a.setupForm != nil {
		return a.viewSetup()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  bliss needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewExporting() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	textStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	card := cardStyle.Render(a.spinner.View() + textStyle.Render(" Saving journal to "+a.exportPath))
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"p l c h x", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"j k", "Move in settings"},
			{"click", "Switch tab"},
		}},
		{"Budget", []struct{ key, desc string }{
			{"b", "Set budget"},
			{"i", "Increase budget"},
			{"u", "Custom budgeting"},
			{"z", "Reset to even split"},
		}},
		{"Categories & Expenses", []struct{ key, desc string }{
			{"a", "Add category"},
			{"d", "Delete category"},
			{"n", "New expense"},
		}},
		{"General", []struct{ key, desc string }{
			{"Esc", "Cancel form / dismiss notice"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}
	for i, sec := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height
	s := a.sess.State()
	sum := pipeline.Summarize(s)

	// 1. Header: tab bar + title row
	header := components.RenderTabBar(a.activeTab, w) + "\n" + a.renderTitleRow(sum, w)
	if a.hasNotice() {
		header += "\n" + components.RenderNotice(a.notice.level, a.notice.text, w)
	}

	// 2. Status bar
	statusBar := components.RenderStatusBar(w, sum.UsedFraction, sum.Budget.IsPositive())

	// 3. Content zone height
	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	// 4. Tab content, or the open form
	var content string
	if a.form != nil {
		content = components.ContentCard(a.formVals.title(), a.form.View(), cw)
	} else {
		switch a.activeTab {
		case tabPlan:
			content = a.renderPlanTab(cw)
		case tabLedger:
			content = a.renderLedgerTab(cw)
		case tabCharts:
			content = a.renderChartsTab(cw)
		case tabHistory:
			content = a.renderHistoryTab(cw)
		case tabSettings:
			content = a.renderSettingsTab(cw)
		}
	}

	// 5. Truncate + pad to exactly contentH lines
	content = padHeight(truncateHeight(content, contentH), contentH)

	// 6. Fill each line to full width with background
	content = fillLinesWithBackground(content, cw, t.Background)

	// 7. Center when the terminal is wider than the content
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) renderTitleRow(sum model.Summary, w int) string {
	t := theme.Active

	rowStyle := lipgloss.NewStyle().Background(t.Surface).Width(w)
	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	statusStyle := lipgloss.NewStyle().
		Foreground(t.StatusColor(sum.Status == model.OverBudget)).
		Background(t.Surface).
		Bold(true)

	row := logoStyle.Render(" ◈ Budget Bliss") +
		dimStyle.Render("  │  budget ") + valueStyle.Render(cli.FormatMoney(sum.Budget)) +
		dimStyle.Render("  │  balance ") + valueStyle.Render(cli.FormatMoney(sum.Remaining)) +
		dimStyle.Render("  │  ") + statusStyle.Render(sum.Status.String())
	return rowStyle.Render(row)
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)

		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// Separator is one column between tabs.
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}

// ─── Helpers ────────────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	padding := strings.Repeat("\n", h-len(lines))
	return s + padding
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}
