package budget

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/bliss/internal/model"
)

// Action kinds, shared by the journal and replay scripts.
const (
	KindSetBudget      = "set_budget"
	KindIncreaseBudget = "increase_budget"
	KindAddCategory    = "add_category"
	KindDeleteCategory = "delete_category"
	KindExpense        = "expense"
	KindSetOverride    = "set_override"
	KindClearOverride  = "clear_override"
	KindResetOverrides = "reset_overrides"
)

// Action is a user intent dispatched through Apply.
type Action interface {
	Kind() string
}

// SetBudget replaces the total budget.
type SetBudget struct{ Amount decimal.Decimal }

// IncreaseBudget adds to the total budget.
type IncreaseBudget struct{ Amount decimal.Decimal }

// AddCategory appends a category.
type AddCategory struct{ Name string }

// DeleteCategory removes a category from the active set.
type DeleteCategory struct{ Name string }

// RecordExpense logs spend against a category.
type RecordExpense struct {
	Category string
	Amount   decimal.Decimal
}

// SetOverride pins a category's ideal budget.
type SetOverride struct {
	Category string
	Amount   decimal.Decimal
}

// ClearOverride returns a category to the even split.
type ClearOverride struct{ Category string }

// ResetOverrides returns every category to the even split.
type ResetOverrides struct{}

func (SetBudget) Kind() string      { return KindSetBudget }
func (IncreaseBudget) Kind() string { return KindIncreaseBudget }
func (AddCategory) Kind() string    { return KindAddCategory }
func (DeleteCategory) Kind() string { return KindDeleteCategory }
func (RecordExpense) Kind() string  { return KindExpense }
func (SetOverride) Kind() string    { return KindSetOverride }
func (ClearOverride) Kind() string  { return KindClearOverride }
func (ResetOverrides) Kind() string { return KindResetOverrides }

// Outcome carries what a transition produced besides the new state.
type Outcome struct {
	// Status is set after an expense is recorded.
	Status    model.Status
	HasStatus bool
}

// Apply runs one action against s. On error the returned state is s.
func Apply(s State, a Action) (State, Outcome, error) {
	var (
		next State
		out  Outcome
		err  error
	)

	switch act := a.(type) {
	case SetBudget:
		next, err = s.SetBudget(act.Amount)
	case IncreaseBudget:
		next, err = s.IncreaseBudget(act.Amount)
	case AddCategory:
		next, err = s.AddCategory(act.Name)
	case DeleteCategory:
		next, err = s.DeleteCategory(act.Name)
	case RecordExpense:
		next, out.Status, err = s.RecordExpense(act.Category, act.Amount)
		out.HasStatus = err == nil
	case SetOverride:
		next, err = s.SetOverride(act.Category, act.Amount)
	case ClearOverride:
		next, err = s.ClearOverride(act.Category)
	case ResetOverrides:
		next = s.ResetOverrides()
	default:
		return s, Outcome{}, fmt.Errorf("unsupported action %T", a)
	}

	if err != nil {
		return s, Outcome{}, err
	}
	return next, out, nil
}

// Describe returns the category and amount an action refers to, for logs
// and the journal. Empty strings mean the action has none.
func Describe(a Action) (category, amount string) {
	switch act := a.(type) {
	case SetBudget:
		return "", act.Amount.String()
	case IncreaseBudget:
		return "", act.Amount.String()
	case AddCategory:
		return act.Name, ""
	case DeleteCategory:
		return act.Name, ""
	case RecordExpense:
		return act.Category, act.Amount.String()
	case SetOverride:
		return act.Category, act.Amount.String()
	case ClearOverride:
		return act.Category, ""
	}
	return "", ""
}
