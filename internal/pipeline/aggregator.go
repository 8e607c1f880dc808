// Package pipeline derives the views the TUI and CLI render from a budget state.
package pipeline

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/bliss/internal/budget"
	"github.com/theirongolddev/bliss/internal/model"
)

// PlanRows returns one row per active category in insertion order, followed
// by archived categories (spend only) sorted by name.
func PlanRows(s budget.State) []model.PlanRow {
	plan := s.Plan()
	ledger := s.Ledger()
	archived := s.Archived()

	rows := make([]model.PlanRow, 0, len(plan)+len(archived))
	for _, c := range s.Categories() {
		alloc, _ := s.Allocation(c)
		ideal := plan[c]
		spent := ledger[c]
		row := model.PlanRow{
			Category:  c,
			Ideal:     ideal,
			Spent:     spent,
			Remaining: ideal.Sub(spent),
			Override:  alloc.IsOverride(),
		}
		if ideal.IsPositive() {
			row.UsedPct = spent.Div(ideal).InexactFloat64()
		}
		rows = append(rows, row)
	}

	for _, c := range archived {
		spent := ledger[c]
		rows = append(rows, model.PlanRow{
			Category:  c,
			Spent:     spent,
			Remaining: spent.Neg(),
			Archived:  true,
		})
	}
	return rows
}

// ExpenseShares computes each category's fraction of total spend, sorted by
// amount descending and then by name. Zero total spend yields no slices.
func ExpenseShares(s budget.State) []model.ShareSlice {
	ledger := s.Ledger()
	total := ledger.Total()
	if !total.IsPositive() {
		return nil
	}

	slices := make([]model.ShareSlice, 0, len(ledger))
	for c, amt := range ledger {
		if amt.IsZero() {
			continue
		}
		slices = append(slices, model.ShareSlice{
			Category: c,
			Amount:   amt,
			Share:    amt.Div(total).InexactFloat64(),
			Archived: !s.HasCategory(c),
		})
	}
	sort.Slice(slices, func(i, j int) bool {
		if !slices[i].Amount.Equal(slices[j].Amount) {
			return slices[i].Amount.GreaterThan(slices[j].Amount)
		}
		return slices[i].Category < slices[j].Category
	})
	return slices
}

// BalanceSeries converts the balance history to chart points labelled
// "Start", "Expense 1", "Expense 2", and so on.
func BalanceSeries(s budget.State) model.BalanceSeries {
	history := s.History()
	series := model.BalanceSeries{
		Labels: make([]string, len(history)),
		Values: make([]float64, len(history)),
	}
	for i, v := range history {
		series.Labels[i] = PointLabel(i)
		series.Values[i] = v.InexactFloat64()
	}
	return series
}

// PointLabel names the i-th balance history entry.
func PointLabel(i int) string {
	if i == 0 {
		return "Start"
	}
	return fmt.Sprintf("Expense %d", i)
}

// Summarize computes the top-level numbers for metric cards.
func Summarize(s budget.State) model.Summary {
	spent := s.TotalSpent()
	allocated := s.Plan().Total()

	sum := model.Summary{
		Budget:      s.Budget(),
		Spent:       spent,
		Remaining:   s.Balance(),
		Allocated:   allocated,
		Unallocated: s.Budget().Sub(allocated),
		Categories:  len(s.Categories()),
		Archived:    len(s.Archived()),
		Expenses:    s.ExpenseCount(),
		Status:      s.Status(),
	}
	if s.Budget().IsPositive() {
		sum.UsedFraction = spent.Div(s.Budget()).InexactFloat64()
	}
	return sum
}

// FilterByCategory returns rows whose category contains substr, ignoring case.
func FilterByCategory(rows []model.PlanRow, substr string) []model.PlanRow {
	if substr == "" {
		return rows
	}
	var result []model.PlanRow
	for _, r := range rows {
		if containsIgnoreCase(r.Category, substr) {
			result = append(result, r)
		}
	}
	return result
}

// MaxSpent returns the largest spend across rows, for scaling bars.
func MaxSpent(rows []model.PlanRow) decimal.Decimal {
	max := decimal.Zero
	for _, r := range rows {
		if r.Spent.GreaterThan(max) {
			max = r.Spent
		}
	}
	return max
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
