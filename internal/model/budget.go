// Package model defines domain types for budget plans, expense ledgers, and their derived views.
package model

import "github.com/shopspring/decimal"

// AllocationKind tags how a category's ideal budget is resolved.
type AllocationKind int

const (
	// EvenSplit shares the total budget equally across all active categories.
	EvenSplit AllocationKind = iota
	// Override pins the category to a user-supplied amount.
	Override
)

// Allocation is the per-category allocation rule: EvenSplit or Override(Amount).
type Allocation struct {
	Kind   AllocationKind
	Amount decimal.Decimal // set only for Override
}

// Even returns an EvenSplit allocation.
func Even() Allocation {
	return Allocation{Kind: EvenSplit}
}

// Fixed returns an Override allocation for amount.
func Fixed(amount decimal.Decimal) Allocation {
	return Allocation{Kind: Override, Amount: amount}
}

// IsOverride reports whether the allocation pins a user amount.
func (a Allocation) IsOverride() bool {
	return a.Kind == Override
}

// Resolve returns the allocated amount given the even-split share.
func (a Allocation) Resolve(evenShare decimal.Decimal) decimal.Decimal {
	if a.Kind == Override {
		return a.Amount
	}
	return evenShare
}

// IdealPlan maps each active category to its suggested budget.
type IdealPlan map[string]decimal.Decimal

// Total sums every allocation in the plan.
func (p IdealPlan) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range p {
		total = total.Add(v)
	}
	return total
}

// Ledger maps a category to its cumulative spend. Entries of deleted
// categories are retained.
type Ledger map[string]decimal.Decimal

// Total sums every ledger entry, archived categories included.
func (l Ledger) Total() decimal.Decimal {
	total := decimal.Zero
	for _, v := range l {
		total = total.Add(v)
	}
	return total
}

// Clone returns an independent copy of the ledger.
func (l Ledger) Clone() Ledger {
	out := make(Ledger, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}

// Status classifies total spend against the budget.
type Status int

const (
	// UnderBudget means total expenses are at or below the budget.
	UnderBudget Status = iota
	// OverBudget means total expenses exceed the budget.
	OverBudget
)

func (s Status) String() string {
	switch s {
	case UnderBudget:
		return "under budget"
	case OverBudget:
		return "over budget"
	default:
		return "unknown"
	}
}

// Message returns the user-facing notification text for the status.
func (s Status) Message() string {
	if s == OverBudget {
		return "Oh no! You have exceeded your budget, try to save more! 💸"
	}
	return "Great! You are still under your budget, good work! 🎉"
}
