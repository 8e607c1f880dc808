package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/bliss/internal/budget"
	"github.com/theirongolddev/bliss/internal/cli"
	"github.com/theirongolddev/bliss/internal/model"
	"github.com/theirongolddev/bliss/internal/tui/components"
)

type formKind int

const (
	formNone formKind = iota
	formSetBudget
	formIncreaseBudget
	formAddCategory
	formDeleteCategory
	formExpense
	formCustomBudgets
)

// formValues holds the fields a huh form writes into. It lives behind a
// pointer so the bindings survive App being copied by value.
type formValues struct {
	kind       formKind
	amount     string
	category   string
	categories []string // custom budgets: one per input, in order
	overrides  []string
}

func (v *formValues) title() string {
	switch v.kind {
	case formSetBudget:
		return "Set Budget"
	case formIncreaseBudget:
		return "Increase Budget"
	case formAddCategory:
		return "Add Category"
	case formDeleteCategory:
		return "Delete Category"
	case formExpense:
		return "New Expense"
	case formCustomBudgets:
		return "Custom Budgeting"
	}
	return ""
}

// actions turns submitted values into reducer actions. Amounts are parsed
// here, so bad input becomes an error notice instead of a stuck form. A
// custom budgeting form with any bad amount yields no actions at all.
func (v *formValues) actions() ([]budget.Action, error) {
	switch v.kind {
	case formSetBudget:
		amt, err := budget.ParseAmount("budget", v.amount)
		if err != nil {
			return nil, err
		}
		return []budget.Action{budget.SetBudget{Amount: amt}}, nil

	case formIncreaseBudget:
		amt, err := budget.ParseAmount("additional budget", v.amount)
		if err != nil {
			return nil, err
		}
		return []budget.Action{budget.IncreaseBudget{Amount: amt}}, nil

	case formAddCategory:
		return []budget.Action{budget.AddCategory{Name: v.category}}, nil

	case formDeleteCategory:
		return []budget.Action{budget.DeleteCategory{Name: v.category}}, nil

	case formExpense:
		amt, err := budget.ParseAmount("expense", v.amount)
		if err != nil {
			return nil, err
		}
		return []budget.Action{budget.RecordExpense{Category: v.category, Amount: amt}}, nil

	case formCustomBudgets:
		acts := make([]budget.Action, 0, len(v.categories))
		for i, cat := range v.categories {
			raw := ""
			if i < len(v.overrides) {
				raw = v.overrides[i]
			}
			if isBlank(raw) {
				acts = append(acts, budget.ClearOverride{Category: cat})
				continue
			}
			amt, err := budget.ParseAmount("budget for "+cat, raw)
			if err != nil {
				return nil, err
			}
			acts = append(acts, budget.SetOverride{Category: cat, Amount: amt})
		}
		return acts, nil
	}
	return nil, fmt.Errorf("unknown form %d", v.kind)
}

// newActionForm builds the huh form for kind, prefilled from the current state.
func newActionForm(kind formKind, s budget.State, lastCategory string) (*huh.Form, *formValues) {
	v := &formValues{kind: kind}
	cats := s.Categories()

	var group *huh.Group
	switch kind {
	case formSetBudget:
		v.amount = s.Budget().String()
		group = huh.NewGroup(
			huh.NewInput().
				Title("Total budget").
				Description("Replaces the current budget; overrides are kept.").
				Value(&v.amount),
		)

	case formIncreaseBudget:
		group = huh.NewGroup(
			huh.NewInput().
				Title("Additional budget").
				Description("Current budget: " + cli.FormatMoney(s.Budget())).
				Placeholder("0.00").
				Value(&v.amount),
		)

	case formAddCategory:
		group = huh.NewGroup(
			huh.NewInput().
				Title("Category name").
				Placeholder("Groceries").
				Value(&v.category),
		)

	case formDeleteCategory:
		v.category = lastCategory
		group = huh.NewGroup(
			huh.NewSelect[string]().
				Title("Category to delete").
				Description("Its spend stays in the ledger as archived.").
				Options(huh.NewOptions(cats...)...).
				Value(&v.category),
		)

	case formExpense:
		v.category = lastCategory
		group = huh.NewGroup(
			huh.NewSelect[string]().
				Title("Category").
				Options(huh.NewOptions(cats...)...).
				Value(&v.category),
			huh.NewInput().
				Title("Amount").
				Placeholder("0.00").
				Value(&v.amount),
		)

	case formCustomBudgets:
		plan := s.Plan()
		v.categories = cats
		v.overrides = make([]string, len(cats))
		fields := make([]huh.Field, 0, len(cats))
		for i, c := range cats {
			if alloc, ok := s.Allocation(c); ok && alloc.IsOverride() {
				v.overrides[i] = alloc.Amount.String()
			}
			fields = append(fields, huh.NewInput().
				Title(c).
				Placeholder("even split ("+cli.FormatMoney(plan[c])+")").
				Value(&v.overrides[i]))
		}
		group = huh.NewGroup(fields...).
			Description("Leave a category blank to use the even split.")
	}

	form := huh.NewForm(group).
		WithTheme(huh.ThemeBase16()).
		WithShowHelp(true)
	return form, v
}

// openForm shows the action form for kind, unless the state cannot
// support it yet.
func (a App) openForm(kind formKind) (App, tea.Cmd) {
	s := a.sess.State()
	needsCategory := kind == formDeleteCategory || kind == formExpense || kind == formCustomBudgets
	if needsCategory && len(s.Categories()) == 0 {
		return a, a.notify(components.NoticeWarning, "Add a category first ([a])")
	}

	a.form, a.formVals = newActionForm(kind, s, a.sess.LastAddedCategory())
	if a.width > 0 {
		a.form = a.form.WithWidth(a.formWidth())
	}
	return a, a.form.Init()
}

func (a App) closeForm() App {
	a.form = nil
	a.formVals = nil
	return a
}

// submitForm dispatches the completed form's actions and reports the result.
func (a App) submitForm(v *formValues) (App, tea.Cmd) {
	acts, err := v.actions()
	if err != nil {
		return a, a.notifyError(err)
	}

	out, err := a.sess.DispatchAll(a.ctx, acts...)
	cmds := []tea.Cmd{a.loadJournalCmd()}
	if err != nil {
		cmds = append(cmds, a.notifyError(err))
		return a, tea.Batch(cmds...)
	}

	s := a.sess.State()
	switch v.kind {
	case formExpense:
		if out.HasStatus {
			level := components.NoticeSuccess
			if out.Status == model.OverBudget {
				level = components.NoticeWarning
			}
			cmds = append(cmds, a.notify(level, out.Status.Message()))
		}
	case formSetBudget:
		cmds = append(cmds, a.notify(components.NoticeSuccess, "Budget set to "+cli.FormatMoney(s.Budget())))
	case formIncreaseBudget:
		cmds = append(cmds, a.notify(components.NoticeSuccess, "Budget increased to "+cli.FormatMoney(s.Budget())))
	case formAddCategory:
		cmds = append(cmds, a.notify(components.NoticeSuccess, "Added category "+a.sess.LastAddedCategory()))
	case formDeleteCategory:
		text := "Deleted category " + v.category
		if spent, ok := s.Ledger()[v.category]; ok && !spent.IsZero() {
			text += " (its spend is kept as archived)"
		}
		cmds = append(cmds, a.notify(components.NoticeSuccess, text))
	case formCustomBudgets:
		cmds = append(cmds, a.notify(components.NoticeSuccess, "Custom budgets applied"))
	}
	return a, tea.Batch(cmds...)
}

// resetOverrides returns every category to the even split without a form.
func (a App) resetOverrides() (App, tea.Cmd) {
	if _, err := a.sess.Dispatch(a.ctx, budget.ResetOverrides{}); err != nil {
		return a, tea.Batch(a.loadJournalCmd(), a.notifyError(err))
	}
	return a, tea.Batch(
		a.loadJournalCmd(),
		a.notify(components.NoticeInfo, "All categories are back to an even split"),
	)
}

func (a App) formWidth() int {
	return min(max(a.contentWidth()-8, 30), 72)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
