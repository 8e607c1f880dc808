package cli

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/bliss/internal/model"
)

const (
	usedBarWidth  = 10
	shareBarWidth = 20
)

// RenderStatus renders the budget status message in green or red.
func RenderStatus(s model.Status) string {
	if s == model.OverBudget {
		return overStyle.Render(s.Message())
	}
	return costStyle.Render(s.Message())
}

// RenderSummary renders the headline budget numbers as a two-column table.
func RenderSummary(sum model.Summary) string {
	rows := [][]string{
		{"Budget", FormatMoney(sum.Budget)},
		{"Spent", FormatMoney(sum.Spent)},
		{"Remaining", FormatMoney(sum.Remaining)},
		{"Allocated", FormatMoney(sum.Allocated)},
		{"Unallocated", FormatMoney(sum.Unallocated)},
		{"---"},
		{"Categories", fmt.Sprintf("%d", sum.Categories)},
		{"Expenses", fmt.Sprintf("%d", sum.Expenses)},
		{"Used", FormatPercent(sum.UsedFraction)},
	}
	if sum.Archived > 0 {
		rows = append(rows, []string{"Archived", fmt.Sprintf("%d", sum.Archived)})
	}
	return RenderTable(Table{Title: "Summary", Rows: rows})
}

// RenderPlan renders the ideal plan with spend per category. Overridden
// categories are marked with *, archived ones with (archived).
func RenderPlan(rows []model.PlanRow) string {
	t := Table{
		Title:   "Ideal Plan",
		Headers: []string{"Category", "Ideal", "Spent", "Remaining", "Used"},
	}
	archivedSeen := false
	for _, r := range rows {
		name := r.Category
		ideal := FormatMoney(r.Ideal)
		used := RenderProgressBar(r.UsedPct, usedBarWidth)
		if r.Override {
			name += " *"
		}
		if r.Archived {
			if !archivedSeen {
				t.Rows = append(t.Rows, []string{"---"})
				archivedSeen = true
			}
			name += " (archived)"
			ideal = "-"
			used = "-"
		}
		t.Rows = append(t.Rows, []string{name, ideal, FormatMoney(r.Spent), FormatMoney(r.Remaining), used})
	}
	return RenderTable(t)
}

// RenderShares renders expense proportions with a bar per category, the
// largest slice filling its bar.
func RenderShares(slices []model.ShareSlice) string {
	if len(slices) == 0 {
		return "  " + mutedStyle.Render("No expenses recorded.") + "\n"
	}

	t := Table{
		Title:   "Expenses by Category",
		Headers: []string{"Category", "Spent", "Share", ""},
	}
	for _, s := range slices {
		name := s.Category
		if s.Archived {
			name += " (archived)"
		}
		bar := RenderHorizontalBar(s.Share, slices[0].Share, shareBarWidth)
		t.Rows = append(t.Rows, []string{name, FormatMoney(s.Amount), FormatPercent(s.Share), bar})
	}
	return RenderTable(t)
}

// RenderTrend renders the balance history as a sparkline plus a table.
func RenderTrend(series model.BalanceSeries) string {
	var b strings.Builder
	b.WriteString("  ")
	b.WriteString(headerStyle.Render("Balance Trend"))
	b.WriteString("  ")
	b.WriteString(RenderSparkline(series.Values))
	if n := len(series.Values); n > 1 {
		b.WriteString("  ")
		b.WriteString(mutedStyle.Render(FormatCompactMoney(series.Values[0]) + " → " + FormatCompactMoney(series.Values[n-1])))
	}
	b.WriteString("\n")

	t := Table{Headers: []string{"Point", "Balance"}}
	for i, label := range series.Labels {
		t.Rows = append(t.Rows, []string{label, FormatMoneyFloat(series.Values[i])})
	}
	b.WriteString(RenderTable(t))
	return b.String()
}

// RenderJournal renders journal entries, rejected ones with their error.
func RenderJournal(entries []model.JournalEntry) string {
	if len(entries) == 0 {
		return "  " + mutedStyle.Render("Journal is empty.") + "\n"
	}

	t := Table{
		Title:   "Journal",
		Headers: []string{"Time", "Seq", "Action", "Category", "Amount", "Result", "Balance"},
	}
	for _, e := range entries {
		result := "ok"
		if !e.Accepted {
			result = "rejected: " + e.Error
		}
		t.Rows = append(t.Rows, []string{
			e.At.Local().Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%d", e.Seq),
			e.Action,
			e.Category,
			e.Amount,
			result,
			FormatMoney(e.Balance),
		})
	}
	return RenderTable(t)
}
