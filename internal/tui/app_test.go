package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/bliss/internal/budget"
	"github.com/theirongolddev/bliss/internal/config"
	"github.com/theirongolddev/bliss/internal/model"
	"github.com/theirongolddev/bliss/internal/session"
	"github.com/theirongolddev/bliss/internal/store"
	"github.com/theirongolddev/bliss/internal/tui/components"
	"github.com/theirongolddev/bliss/internal/tui/theme"
)

func init() {
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func newTestApp(t *testing.T, total string, cats ...string) App {
	t.Helper()
	s, err := budget.New(decimal.RequireFromString(total), cats...)
	if err != nil {
		t.Fatalf("budget.New: %v", err)
	}
	a := NewApp(context.Background(), Options{
		Session: session.New(s, nil, nil),
		Config:  config.DefaultConfig(),
	})
	m, _ := a.Update(tea.WindowSizeMsg{Width: 140, Height: 45})
	return m.(App)
}

func press(t *testing.T, a App, key string) App {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	m, _ := a.Update(msg)
	return m.(App)
}

func TestTabAtXMatchesTabWidths(t *testing.T) {
	for active := range components.Tabs {
		a := App{activeTab: active}
		pos := 0

		for i, tab := range components.Tabs {
			w := tabWidthForTest(tab.Name, i == active, tab.KeyPos < 0)
			x := pos + w/2 // midpoint inside this tab
			if got := a.tabAtX(x); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, x, got, i)
			}
			pos += w
			if i < len(components.Tabs)-1 {
				pos++ // separator
			}
		}
		if got := a.tabAtX(pos + 5); got != -1 {
			t.Errorf("active=%d: x past the last tab -> %d, want -1", active, got)
		}
	}
}

func tabWidthForTest(name string, active, keyOutsideName bool) int {
	w := len(name) + 2 // horizontal padding in tab renderer
	if !active {
		w += 2 // brackets around the shortcut
		if keyOutsideName {
			w++ // inactive Settings adds "[x]"
		}
	}
	return w
}

func TestMouseClickSwitchesTab(t *testing.T) {
	a := newTestApp(t, "1000", "Food")
	x := 0
	for i := 0; i < tabCharts; i++ {
		x += components.TabVisualWidth(components.Tabs[i], i == a.activeTab) + 1
	}
	m, _ := a.Update(tea.MouseMsg{X: x + 1, Y: 0, Button: tea.MouseButtonLeft})
	if got := m.(App).activeTab; got != tabCharts {
		t.Errorf("activeTab = %d, want %d", got, tabCharts)
	}

	// Clicks below the tab bar are ignored.
	m, _ = a.Update(tea.MouseMsg{X: x + 1, Y: 5, Button: tea.MouseButtonLeft})
	if got := m.(App).activeTab; got != tabPlan {
		t.Errorf("activeTab = %d after body click, want %d", got, tabPlan)
	}
}

func TestTabKeys(t *testing.T) {
	a := newTestApp(t, "1000", "Food")
	tests := []struct {
		key  string
		want int
	}{
		{"l", tabLedger},
		{"c", tabCharts},
		{"h", tabHistory},
		{"x", tabSettings},
		{"p", tabPlan},
		{"left", tabSettings},
		{"right", tabPlan},
	}
	for _, tt := range tests {
		a = press(t, a, tt.key)
		if a.activeTab != tt.want {
			t.Errorf("after %q activeTab = %d, want %d", tt.key, a.activeTab, tt.want)
		}
	}
}

func TestNoticeSupersededTimerIgnored(t *testing.T) {
	a := newTestApp(t, "1000", "Food")

	if cmd := a.notify(components.NoticeInfo, "first"); cmd == nil {
		t.Fatal("notify returned no timer")
	}
	first := a.notice.seq
	a.notify(components.NoticeSuccess, "second")

	m, _ := a.Update(noticeExpiredMsg{seq: first})
	a = m.(App)
	if a.notice.text != "second" {
		t.Fatalf("stale timer cleared the newer notice: %+v", a.notice)
	}

	m, _ = a.Update(noticeExpiredMsg{seq: a.notice.seq})
	a = m.(App)
	if a.hasNotice() {
		t.Errorf("notice still visible after its own timer: %+v", a.notice)
	}
}

func TestNoticeEscDismisses(t *testing.T) {
	a := newTestApp(t, "1000", "Food")
	a.notify(components.NoticeWarning, "heads up")
	seq := a.notice.seq

	a = press(t, a, "esc")
	if a.hasNotice() {
		t.Fatal("esc did not dismiss the notice")
	}

	// The dismissed notice's timer fires later and must not disturb a new one.
	a.notify(components.NoticeInfo, "next")
	m, _ := a.Update(noticeExpiredMsg{seq: seq})
	if got := m.(App).notice.text; got != "next" {
		t.Errorf("notice = %q, want %q", got, "next")
	}
}

func TestFormValuesActions(t *testing.T) {
	tests := []struct {
		name    string
		vals    formValues
		want    []budget.Action
		wantErr bool
	}{
		{
			name: "set budget",
			vals: formValues{kind: formSetBudget, amount: " 1500 "},
			want: []budget.Action{budget.SetBudget{Amount: decimal.RequireFromString("1500")}},
		},
		{
			name: "expense",
			vals: formValues{kind: formExpense, category: "Food", amount: "12.50"},
			want: []budget.Action{budget.RecordExpense{Category: "Food", Amount: decimal.RequireFromString("12.50")}},
		},
		{
			name: "custom budgets with blank as even split",
			vals: formValues{
				kind:       formCustomBudgets,
				categories: []string{"Food", "Rent"},
				overrides:  []string{"", "800"},
			},
			want: []budget.Action{
				budget.ClearOverride{Category: "Food"},
				budget.SetOverride{Category: "Rent", Amount: decimal.RequireFromString("800")},
			},
		},
		{
			name:    "custom budgets with one bad amount",
			vals:    formValues{kind: formCustomBudgets, categories: []string{"Food", "Rent"}, overrides: []string{"10", "lots"}},
			wantErr: true,
		},
		{
			name:    "negative increase",
			vals:    formValues{kind: formIncreaseBudget, amount: "-5"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.vals.actions()
			if tt.wantErr {
				if !errors.Is(err, budget.ErrValidation) {
					t.Fatalf("err = %v, want validation error", err)
				}
				if got != nil {
					t.Errorf("got actions %v alongside an error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d actions, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if !actionEqual(got[i], tt.want[i]) {
					t.Errorf("action %d = %#v, want %#v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func actionEqual(a, b budget.Action) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	ac, aa := budget.Describe(a)
	bc, ba := budget.Describe(b)
	return ac == bc && aa == ba
}

func TestSubmitExpenseShowsStatus(t *testing.T) {
	a := newTestApp(t, "1000", "Food", "Transport")

	a, _ = a.submitForm(&formValues{kind: formExpense, category: "Food", amount: "700"})
	if got := a.sess.State().Ledger()["Food"]; !got.Equal(decimal.NewFromInt(700)) {
		t.Fatalf("Food spent = %s, want 700", got)
	}
	if a.notice.level != components.NoticeSuccess || a.notice.text != model.UnderBudget.Message() {
		t.Errorf("notice = %+v, want under-budget success", a.notice)
	}

	a, _ = a.submitForm(&formValues{kind: formExpense, category: "Transport", amount: "500"})
	if a.notice.level != components.NoticeWarning || a.notice.text != model.OverBudget.Message() {
		t.Errorf("notice = %+v, want over-budget warning", a.notice)
	}
}

func TestSubmitRejectedLeavesStateAlone(t *testing.T) {
	a := newTestApp(t, "1000", "Food")
	before := a.sess.State()

	a, _ = a.submitForm(&formValues{kind: formAddCategory, category: "Food"})
	if a.notice.level != components.NoticeError || !strings.Contains(a.notice.text, "already exists") {
		t.Errorf("notice = %+v, want duplicate error", a.notice)
	}

	a, _ = a.submitForm(&formValues{kind: formExpense, category: "Food", amount: "abc"})
	if a.notice.level != components.NoticeError || !strings.Contains(a.notice.text, "not a number") {
		t.Errorf("notice = %+v, want parse error", a.notice)
	}

	after := a.sess.State()
	if !after.Budget().Equal(before.Budget()) || len(after.Categories()) != 1 || after.ExpenseCount() != 0 {
		t.Errorf("state changed after rejected actions")
	}
}

func TestOpenFormNeedsCategory(t *testing.T) {
	a := newTestApp(t, "1000")

	a = press(t, a, "n")
	if a.form != nil {
		t.Fatal("expense form opened without categories")
	}
	if a.notice.level != components.NoticeWarning {
		t.Errorf("notice = %+v, want warning", a.notice)
	}

	a = press(t, a, "a")
	if a.form == nil || a.formVals.kind != formAddCategory {
		t.Fatal("add category form did not open")
	}
	a = press(t, a, "esc")
	if a.form != nil {
		t.Error("esc did not cancel the form")
	}
}

func TestExpenseFormDefaultsToLastAddedCategory(t *testing.T) {
	a := newTestApp(t, "1000", "Food", "Transport")
	a, _ = a.submitForm(&formValues{kind: formAddCategory, category: "Gifts"})

	a = press(t, a, "n")
	if a.formVals == nil || a.formVals.category != "Gifts" {
		t.Fatalf("expense form category = %+v, want Gifts", a.formVals)
	}
}

func TestCustomBudgetFormPrefillsOverrides(t *testing.T) {
	a := newTestApp(t, "900", "Food", "Rent")
	a, _ = a.submitForm(&formValues{
		kind:       formCustomBudgets,
		categories: []string{"Food", "Rent"},
		overrides:  []string{"", "600"},
	})
	if plan := a.sess.State().Plan(); !plan["Rent"].Equal(decimal.NewFromInt(600)) || !plan["Food"].Equal(decimal.NewFromInt(450)) {
		t.Fatalf("plan = %v", plan)
	}

	a = press(t, a, "u")
	if a.formVals == nil {
		t.Fatal("custom budgeting form did not open")
	}
	if got := a.formVals.overrides; got[0] != "" || got[1] != "600" {
		t.Errorf("prefilled overrides = %q", got)
	}

	a = press(t, a, "esc")
	a = press(t, a, "z")
	if alloc, _ := a.sess.State().Allocation("Rent"); alloc.IsOverride() {
		t.Error("z did not reset overrides")
	}
}

func TestJournalLoadedAfterDispatch(t *testing.T) {
	j, err := store.Open(store.Memory)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = j.Close() })

	s, _ := budget.New(decimal.NewFromInt(100), "Food")
	a := NewApp(context.Background(), Options{
		Session: session.New(s, j, nil),
		Journal: j,
		Config:  config.DefaultConfig(),
	})

	a, _ = a.submitForm(&formValues{kind: formExpense, category: "Food", amount: "10"})
	a, _ = a.submitForm(&formValues{kind: formDeleteCategory, category: "Nope"})

	m, _ := a.Update(a.loadJournalCmd()())
	a = m.(App)
	if len(a.recent) != 2 {
		t.Fatalf("recent = %d entries, want 2", len(a.recent))
	}
	if !a.recent[0].Accepted || a.recent[1].Accepted {
		t.Errorf("accepted flags = %v, %v", a.recent[0].Accepted, a.recent[1].Accepted)
	}
}

func TestQuitExportsJournal(t *testing.T) {
	j, err := store.Open(store.Memory)
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = j.Close() })

	s, _ := budget.New(decimal.NewFromInt(100), "Food")
	out := t.TempDir() + "/journal.db"
	a := NewApp(context.Background(), Options{
		Session:    session.New(s, j, nil),
		Journal:    j,
		Config:     config.DefaultConfig(),
		ExportPath: out,
	})
	a, _ = a.submitForm(&formValues{kind: formExpense, category: "Food", amount: "10"})

	m, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	a = m.(App)
	if !a.exporting || cmd == nil {
		t.Fatal("q did not start the export")
	}

	m, _ = a.Update(a.exportCmd()())
	n, err := m.(App).ExportResult()
	if err != nil || n != 1 {
		t.Errorf("export = %d, %v; want 1 entry", n, err)
	}
}

func TestSettingsSaveValidates(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	a := newTestApp(t, "1000", "Food")
	a.activeTab = tabSettings

	a.settings.cursor = settingsFieldTheme
	a.settings.input = newSettingsInput()
	a.settings.input.SetValue("neon")
	a.settingsSave()
	if a.settings.saveErr == nil || a.cfg.Appearance.Theme != "flexoki-dark" {
		t.Fatalf("bad theme accepted: err=%v theme=%q", a.settings.saveErr, a.cfg.Appearance.Theme)
	}
	if config.Exists() {
		t.Error("config written despite validation error")
	}

	a.settings.cursor = settingsFieldNotification
	a.settings.input.SetValue("9")
	a.settingsSave()
	if a.settings.saveErr != nil {
		t.Fatalf("save: %v", a.settings.saveErr)
	}
	if a.noticeTTL.Seconds() != 9 {
		t.Errorf("noticeTTL = %v, want 9s", a.noticeTTL)
	}
	cfg, err := config.Load()
	if err != nil || cfg.General.NotificationSeconds != 9 {
		t.Errorf("reloaded config = %+v, %v", cfg.General, err)
	}
}

func TestFinishSetupAppliesAnswers(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	a := newTestApp(t, "0", config.DefaultCategories...)

	t.Cleanup(func() { theme.SetActive("flexoki-dark") })
	a, _ = a.finishSetup(&setupValues{budget: "2000", categories: "Food, Rent ,", theme: "tokyo-night"})

	s := a.sess.State()
	if got := s.Categories(); strings.Join(got, ",") != "Food,Rent" {
		t.Errorf("categories = %v, want [Food Rent]", got)
	}
	if !s.Budget().Equal(decimal.NewFromInt(2000)) {
		t.Errorf("budget = %s, want 2000", s.Budget())
	}
	if a.notice.level != components.NoticeSuccess {
		t.Errorf("notice = %+v", a.notice)
	}
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	if cfg.General.DefaultBudget != "2000" || cfg.Appearance.Theme != "tokyo-night" {
		t.Errorf("saved config = %+v", cfg)
	}
}

func TestValidateCategoryList(t *testing.T) {
	if err := validateCategoryList("Food, Rent"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := validateCategoryList("Food, Rent, Food"); err == nil {
		t.Error("duplicate category accepted")
	}
}

func TestViewRendersEveryTab(t *testing.T) {
	a := newTestApp(t, "1000", "Food", "Transport")
	a, _ = a.submitForm(&formValues{kind: formExpense, category: "Food", amount: "300"})
	a, _ = a.submitForm(&formValues{kind: formDeleteCategory, category: "Food"})

	for tab := range components.Tabs {
		a.activeTab = tab
		out := a.View()
		if !strings.Contains(out, "Budget Bliss") {
			t.Errorf("tab %d: title missing", tab)
		}
		if got := lipgloss.Height(out); got != a.height {
			t.Errorf("tab %d: view is %d lines, want %d", tab, got, a.height)
		}
	}

	a.activeTab = tabLedger
	if out := a.View(); !strings.Contains(out, "Food (archived)") {
		t.Error("ledger tab does not flag the deleted category as archived")
	}
}
