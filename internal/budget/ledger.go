package budget

import (
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/bliss/internal/model"
)

// AddToLedger returns a copy of ledger with amount added to category,
// creating the entry at zero first.
func AddToLedger(ledger model.Ledger, category string, amount decimal.Decimal) (model.Ledger, error) {
	if err := checkAmount("amount", amount); err != nil {
		return ledger, err
	}

	next := ledger.Clone()
	next[category] = next[category].Add(amount)
	return next, nil
}

// AppendBalanceHistory returns a copy of history with one new balance:
// total - cumulative.
func AppendBalanceHistory(history []decimal.Decimal, total, cumulative decimal.Decimal) []decimal.Decimal {
	next := make([]decimal.Decimal, len(history), len(history)+1)
	copy(next, history)
	return append(next, total.Sub(cumulative))
}

// StatusFor classifies spent against total. Spending exactly the budget
// is still under budget.
func StatusFor(spent, total decimal.Decimal) model.Status {
	if spent.GreaterThan(total) {
		return model.OverBudget
	}
	return model.UnderBudget
}
