package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/bliss/internal/cli"
	"github.com/theirongolddev/bliss/internal/pipeline"
	"github.com/theirongolddev/bliss/internal/tui/components"
	"github.com/theirongolddev/bliss/internal/tui/theme"
)

func (a App) renderChartsTab(cw int) string {
	t := theme.Active
	s := a.sess.State()
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	widths := []int{cw, cw}
	if !a.isCompactLayout() {
		widths = components.LayoutRow(cw, 2)
	}

	// Expense proportions
	slices := pipeline.ExpenseShares(s)
	var shareBody string
	if len(slices) == 0 {
		shareBody = mutedStyle.Render("No expenses to chart yet.")
	} else {
		segments := make([]components.ShareSegment, len(slices))
		for i, sl := range slices {
			label := sl.Category
			if sl.Archived {
				label += " (archived)"
			}
			segments[i] = components.ShareSegment{
				Label: label,
				Value: cli.FormatMoney(sl.Amount),
				Share: sl.Share,
				Muted: sl.Archived,
			}
		}
		shareBody = components.ShareChart(segments, components.CardInnerWidth(widths[0]))
	}
	shareCard := components.ContentCard("Expense Proportions", shareBody, widths[0])

	// Balance over time
	series := pipeline.BalanceSeries(s)
	chartH := 10
	if a.isCompactLayout() {
		chartH = 7
	}
	color := t.StatusColor(false)
	if s.Balance().IsNegative() {
		color = t.StatusColor(true)
	}
	lineCard := components.ContentCard(
		"Balance Over Time  "+cli.FormatMoney(s.Balance()),
		components.LineChart(series.Values, series.Labels, color, components.CardInnerWidth(widths[1]), chartH),
		widths[1],
	)

	if a.isCompactLayout() {
		return shareCard + "\n" + lineCard
	}

	var b strings.Builder
	b.WriteString(components.CardRow([]string{shareCard, lineCard}))
	return b.String()
}
