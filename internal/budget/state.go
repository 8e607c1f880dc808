// Package budget implements the budget tracker core: the allocation engine,
// the expense ledger with its balance history, and category management.
//
// State is an immutable value. Every transition returns a new State and
// leaves the receiver untouched, including when the transition fails.
package budget

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/bliss/internal/model"
)

// State is one snapshot of a budgeting session.
type State struct {
	budget      decimal.Decimal
	categories  []string
	allocations map[string]model.Allocation
	plan        model.IdealPlan
	ledger      model.Ledger
	history     []decimal.Decimal
	expenses    int
}

// New returns a state with the given budget and categories, in order.
// The balance history is seeded with the budget.
func New(total decimal.Decimal, categories ...string) (State, error) {
	if err := checkAmount("budget", total); err != nil {
		return State{}, err
	}

	s := State{
		budget:      total,
		allocations: make(map[string]model.Allocation),
		ledger:      make(model.Ledger),
		history:     []decimal.Decimal{total},
	}
	for _, c := range categories {
		next, err := s.AddCategory(c)
		if err != nil {
			return State{}, err
		}
		s = next
	}
	s.recompute()
	return s, nil
}

// Budget returns the total budget.
func (s State) Budget() decimal.Decimal { return s.budget }

// ExpenseCount returns how many expenses were recorded.
func (s State) ExpenseCount() int { return s.expenses }

// Categories returns the active categories in insertion order.
func (s State) Categories() []string {
	out := make([]string, len(s.categories))
	copy(out, s.categories)
	return out
}

// HasCategory reports whether name is in the active set.
func (s State) HasCategory(name string) bool {
	return indexOf(s.categories, name) >= 0
}

// Allocation returns the allocation rule of an active category.
func (s State) Allocation(name string) (model.Allocation, bool) {
	if !s.HasCategory(name) {
		return model.Allocation{}, false
	}
	if a, ok := s.allocations[name]; ok {
		return a, true
	}
	return model.Even(), true
}

// Plan returns a copy of the ideal plan.
func (s State) Plan() model.IdealPlan {
	out := make(model.IdealPlan, len(s.plan))
	for k, v := range s.plan {
		out[k] = v
	}
	return out
}

// Ledger returns a copy of the expense ledger.
func (s State) Ledger() model.Ledger {
	return s.ledger.Clone()
}

// History returns a copy of the balance history. It always holds at least
// the seed entry.
func (s State) History() []decimal.Decimal {
	if len(s.history) == 0 {
		return []decimal.Decimal{s.budget}
	}
	out := make([]decimal.Decimal, len(s.history))
	copy(out, s.history)
	return out
}

// TotalSpent sums all recorded expenses, archived categories included.
func (s State) TotalSpent() decimal.Decimal {
	return s.ledger.Total()
}

// Balance returns budget minus total spend.
func (s State) Balance() decimal.Decimal {
	return s.budget.Sub(s.TotalSpent())
}

// Status classifies the current total spend against the budget.
func (s State) Status() model.Status {
	return StatusFor(s.TotalSpent(), s.budget)
}

// Archived returns categories that have ledger entries but are no longer
// active, sorted by name.
func (s State) Archived() []string {
	var out []string
	for c := range s.ledger {
		if !s.HasCategory(c) {
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}

// SetBudget replaces the total budget.
func (s State) SetBudget(amount decimal.Decimal) (State, error) {
	if err := checkAmount("budget", amount); err != nil {
		return s, err
	}
	next := s.clone()
	next.budget = amount
	next.reseed()
	next.recompute()
	return next, nil
}

// IncreaseBudget adds amount to the total budget.
func (s State) IncreaseBudget(amount decimal.Decimal) (State, error) {
	if err := checkAmount("additional budget", amount); err != nil {
		return s, err
	}
	return s.SetBudget(s.budget.Add(amount))
}

// AddCategory appends name to the active set with an even-split allocation.
// Re-adding an archived category reactivates its ledger entry.
func (s State) AddCategory(name string) (State, error) {
	name, err := NormalizeCategory(name)
	if err != nil {
		return s, err
	}
	if s.HasCategory(name) {
		return s, duplicate(name)
	}

	next := s.clone()
	next.categories = append(next.categories, name)
	next.allocations[name] = model.Even()
	next.recompute()
	return next, nil
}

// DeleteCategory removes name and its allocation from the active set.
// Its ledger entry is kept and shows up as archived.
func (s State) DeleteCategory(name string) (State, error) {
	name = strings.TrimSpace(name)
	i := indexOf(s.categories, name)
	if i < 0 {
		return s, unknown(name)
	}

	next := s.clone()
	next.categories = append(next.categories[:i], next.categories[i+1:]...)
	delete(next.allocations, name)
	next.recompute()
	return next, nil
}

// SetOverride pins an active category to amount. Like the other lookups,
// name is matched after trimming surrounding whitespace.
func (s State) SetOverride(name string, amount decimal.Decimal) (State, error) {
	name = strings.TrimSpace(name)
	if !s.HasCategory(name) {
		return s, unknown(name)
	}
	if err := checkAmount("category budget", amount); err != nil {
		return s, err
	}

	next := s.clone()
	next.allocations[name] = model.Fixed(amount)
	next.recompute()
	return next, nil
}

// ClearOverride returns an active category to the even split.
func (s State) ClearOverride(name string) (State, error) {
	name = strings.TrimSpace(name)
	if !s.HasCategory(name) {
		return s, unknown(name)
	}

	next := s.clone()
	next.allocations[name] = model.Even()
	next.recompute()
	return next, nil
}

// ResetOverrides returns every active category to the even split.
func (s State) ResetOverrides() State {
	next := s.clone()
	for _, c := range next.categories {
		next.allocations[c] = model.Even()
	}
	next.recompute()
	return next
}

// RecordExpense adds amount to an active category, appends the post-expense
// balance to the history and returns the resulting budget status.
func (s State) RecordExpense(category string, amount decimal.Decimal) (State, model.Status, error) {
	category = strings.TrimSpace(category)
	if !s.HasCategory(category) {
		return s, s.Status(), unknown(category)
	}

	ledger, err := AddToLedger(s.ledger, category, amount)
	if err != nil {
		return s, s.Status(), err
	}

	next := s.clone()
	next.ledger = ledger
	spent := ledger.Total()
	next.history = AppendBalanceHistory(next.history, next.budget, spent)
	next.expenses++
	return next, StatusFor(spent, next.budget), nil
}

// clone deep-copies every slice and map so transitions never alias the receiver.
func (s State) clone() State {
	next := State{
		budget:      s.budget,
		categories:  make([]string, len(s.categories)),
		allocations: make(map[string]model.Allocation, len(s.allocations)),
		ledger:      s.ledger.Clone(),
		history:     s.History(),
		expenses:    s.expenses,
	}
	copy(next.categories, s.categories)
	for k, v := range s.allocations {
		next.allocations[k] = v
	}
	next.plan = s.plan
	return next
}

// reseed keeps the seed entry in step with the budget until spending starts.
func (s *State) reseed() {
	if s.expenses == 0 {
		s.history = []decimal.Decimal{s.budget}
	}
}

func (s *State) recompute() {
	s.plan = ComputeIdealPlan(s.categories, s.budget, s.allocations)
}

func indexOf(list []string, name string) int {
	for i, v := range list {
		if v == name {
			return i
		}
	}
	return -1
}
