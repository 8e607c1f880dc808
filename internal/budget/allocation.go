package budget

import (
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/bliss/internal/model"
)

// ComputeIdealPlan resolves every category's allocation. Categories without
// an entry in allocations get the even split: total / len(categories).
// An empty category list yields an empty plan.
func ComputeIdealPlan(categories []string, total decimal.Decimal, allocations map[string]model.Allocation) model.IdealPlan {
	plan := make(model.IdealPlan, len(categories))
	if len(categories) == 0 {
		return plan
	}

	share := EvenShare(total, len(categories))
	for _, c := range categories {
		alloc, ok := allocations[c]
		if !ok {
			alloc = model.Even()
		}
		plan[c] = alloc.Resolve(share)
	}
	return plan
}

// EvenShare divides total across n categories, returning zero when n is zero.
func EvenShare(total decimal.Decimal, n int) decimal.Decimal {
	if n <= 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(n)))
}
