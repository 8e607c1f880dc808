package model

import "github.com/shopspring/decimal"

// PlanRow is one line of the ideal plan table.
type PlanRow struct {
	Category  string
	Ideal     decimal.Decimal
	Spent     decimal.Decimal
	Remaining decimal.Decimal
	UsedPct   float64 // spent / ideal, 0 when ideal is zero
	Override  bool
	Archived  bool // deleted category kept for its spend; Ideal is zero
}

// ShareSlice is one slice of the expense proportion chart.
type ShareSlice struct {
	Category string
	Amount   decimal.Decimal
	Share    float64 // 0-1 fraction of total spend
	Archived bool
}

// BalanceSeries is the balance trend with one label per point.
type BalanceSeries struct {
	Labels []string
	Values []float64
}

// Summary holds the top-level numbers shown on metric cards.
type Summary struct {
	Budget       decimal.Decimal
	Spent        decimal.Decimal
	Remaining    decimal.Decimal
	Allocated    decimal.Decimal
	Unallocated  decimal.Decimal
	Categories   int
	Archived     int
	Expenses     int
	Status       Status
	UsedFraction float64
}
