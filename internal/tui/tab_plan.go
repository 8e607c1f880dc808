package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/bliss/internal/cli"
	"github.com/theirongolddev/bliss/internal/model"
	"github.com/theirongolddev/bliss/internal/pipeline"
	"github.com/theirongolddev/bliss/internal/tui/components"
	"github.com/theirongolddev/bliss/internal/tui/theme"
)

func (a App) renderPlanTab(cw int) string {
	t := theme.Active
	s := a.sess.State()
	sum := pipeline.Summarize(s)
	rows := pipeline.PlanRows(s)

	var b strings.Builder

	// Row 1: Metric cards
	allocDelta := cli.FormatMoney(sum.Unallocated) + " unallocated"
	if sum.Unallocated.IsNegative() {
		allocDelta = "over-allocated by " + cli.FormatMoney(sum.Unallocated.Neg())
	}
	metrics := []components.Metric{
		{Label: "Budget", Value: cli.FormatMoney(sum.Budget), Delta: fmt.Sprintf("%d categories", sum.Categories)},
		{Label: "Spent", Value: cli.FormatMoney(sum.Spent), Delta: fmt.Sprintf("%d expenses", sum.Expenses)},
		{Label: "Balance", Value: cli.FormatMoney(sum.Remaining), Delta: sum.Status.String(),
			Color: t.StatusColor(sum.Status == model.OverBudget)},
		{Label: "Allocated", Value: cli.FormatMoney(sum.Allocated), Delta: allocDelta},
	}
	b.WriteString(components.MetricCardRow(metrics, cw))
	b.WriteString("\n")

	// Row 2: Ideal plan with per-category usage
	innerW := components.CardInnerWidth(cw)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	if len(rows) == 0 {
		b.WriteString(components.ContentCard("Ideal Plan",
			mutedStyle.Render("No categories yet. Press [a] to add one."), cw))
		return b.String()
	}

	labelW, detailW := 8, 0
	details := make([]string, len(rows))
	for i, r := range rows {
		labelW = max(labelW, lipgloss.Width(planLabel(r)))
		if r.Archived {
			details[i] = "spent " + cli.FormatMoney(r.Spent)
		} else {
			details[i] = cli.FormatMoney(r.Spent) + " / " + cli.FormatMoney(r.Ideal)
		}
		detailW = max(detailW, lipgloss.Width(details[i]))
	}
	labelW = min(labelW, 24)
	// label, space, bar, space, "100%", two spaces, detail
	barW := max(innerW-labelW-1-1-5-2-detailW, 10)

	var body strings.Builder
	for i, r := range rows {
		if i > 0 {
			body.WriteString("\n")
		}
		if r.Archived {
			name := truncStr(planLabel(r), labelW)
			body.WriteString(dimStyle.Render(fmt.Sprintf("%-*s", labelW, name)))
			body.WriteString(dimStyle.Render(strings.Repeat(" ", barW+9)))
			body.WriteString(mutedStyle.Render(details[i]))
			continue
		}
		body.WriteString(components.BudgetBar(planLabel(r), r.UsedPct, details[i], labelW, barW))
	}
	body.WriteString("\n\n")
	body.WriteString(dimStyle.Render("* custom budget   [u] custom budgeting   [z] reset to even split"))

	title := "Ideal Plan  " + cli.FormatMoney(sum.Allocated) + " of " + cli.FormatMoney(sum.Budget)
	b.WriteString(components.ContentCard(title, body.String(), cw))
	return b.String()
}

func planLabel(r model.PlanRow) string {
	switch {
	case r.Archived:
		return r.Category + " (archived)"
	case r.Override:
		return r.Category + " *"
	default:
		return r.Category
	}
}
