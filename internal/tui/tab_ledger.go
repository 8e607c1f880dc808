package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/bliss/internal/cli"
	"github.com/theirongolddev/bliss/internal/pipeline"
	"github.com/theirongolddev/bliss/internal/tui/components"
	"github.com/theirongolddev/bliss/internal/tui/theme"
)

func (a App) renderLedgerTab(cw int) string {
	t := theme.Active
	s := a.sess.State()
	rows := pipeline.PlanRows(s)
	total := s.TotalSpent()

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var b strings.Builder

	// Row 1: spend per category
	if total.IsZero() {
		b.WriteString(components.ContentCard("Expenses by Category",
			mutedStyle.Render("No expenses recorded yet. Press [n] to log one."), cw))
		b.WriteString("\n")
	} else {
		vals := make([]float64, len(rows))
		labels := make([]string, len(rows))
		for i, r := range rows {
			vals[i] = r.Spent.InexactFloat64()
			labels[i] = r.Category
		}
		chartH := 10
		if a.isCompactLayout() {
			chartH = 7
		}
		b.WriteString(components.ContentCard(
			"Expenses by Category  "+cli.FormatMoney(total),
			components.BarChart(vals, labels, t.Blue, components.CardInnerWidth(cw), chartH),
			cw,
		))
		b.WriteString("\n")
	}

	// Row 2: ledger table
	innerW := components.CardInnerWidth(cw)
	const colW = 12
	nameW := max(innerW-4*colW-4, 12)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	nameStyle := lipgloss.NewStyle().Foreground(t.BlueBright).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	overStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)

	var table strings.Builder
	table.WriteString(headerStyle.Render(fmt.Sprintf("%-*s %*s %*s %*s %*s",
		nameW, "Category", colW, "Spent", colW, "Ideal", colW, "Remaining", colW, "Share")))
	table.WriteString("\n")
	table.WriteString(mutedStyle.Render(strings.Repeat("─", innerW)))
	table.WriteString("\n")

	for _, r := range rows {
		share := 0.0
		if total.IsPositive() {
			share = r.Spent.Div(total).InexactFloat64()
		}
		if r.Archived {
			table.WriteString(dimStyle.Render(fmt.Sprintf("%-*s %*s %*s %*s %*s",
				nameW, truncStr(r.Category+" (archived)", nameW),
				colW, cli.FormatMoney(r.Spent), colW, "-", colW, "-", colW, cli.FormatPercent(share))))
			table.WriteString("\n")
			continue
		}

		remStyle := greenStyle
		if r.Remaining.IsNegative() {
			remStyle = overStyle
		}
		table.WriteString(nameStyle.Render(fmt.Sprintf("%-*s", nameW, truncStr(r.Category, nameW))))
		table.WriteString(valueStyle.Render(fmt.Sprintf(" %*s %*s", colW, cli.FormatMoney(r.Spent), colW, cli.FormatMoney(r.Ideal))))
		table.WriteString(remStyle.Render(fmt.Sprintf(" %*s", colW, cli.FormatMoney(r.Remaining))))
		table.WriteString(mutedStyle.Render(fmt.Sprintf(" %*s", colW, cli.FormatPercent(share))))
		table.WriteString("\n")
	}

	table.WriteString(mutedStyle.Render(strings.Repeat("─", innerW)))
	table.WriteString("\n")
	table.WriteString(headerStyle.Render(fmt.Sprintf("%-*s %*s", nameW, "Total", colW, cli.FormatMoney(total))))
	if biggest := pipeline.MaxSpent(rows); biggest.GreaterThan(decimal.Zero) {
		table.WriteString(mutedStyle.Render(fmt.Sprintf("   largest category %s", cli.FormatMoney(biggest))))
	}

	b.WriteString(components.ContentCard("Ledger", table.String(), cw))
	return b.String()
}
