package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/bliss/internal/cli"
	"github.com/theirongolddev/bliss/internal/pipeline"
	"github.com/theirongolddev/bliss/internal/tui/components"
	"github.com/theirongolddev/bliss/internal/tui/theme"
)

// maxJournalRows caps the journal card; older entries scroll off.
const maxJournalRows = 12

func (a App) renderHistoryTab(cw int) string {
	t := theme.Active
	s := a.sess.State()

	widths := []int{cw, cw}
	if !a.isCompactLayout() {
		widths = components.LayoutRow(cw, 2)
	}

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	greenStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)
	redStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)

	// Balance history
	history := s.History()
	var hist strings.Builder
	hist.WriteString(headerStyle.Render(fmt.Sprintf("%-12s %14s %14s", "Point", "Balance", "Change")))
	hist.WriteString("\n")
	for i, bal := range history {
		balStyle := valueStyle
		if bal.IsNegative() {
			balStyle = redStyle
		}
		hist.WriteString(mutedStyle.Render(fmt.Sprintf("%-12s ", pipeline.PointLabel(i))))
		hist.WriteString(balStyle.Render(fmt.Sprintf("%14s", cli.FormatMoney(bal))))
		if i > 0 {
			hist.WriteString(dimStyle.Render(fmt.Sprintf(" %14s", cli.FormatDelta(bal.Sub(history[i-1])))))
		}
		hist.WriteString("\n")
	}
	hist.WriteString(dimStyle.Render(fmt.Sprintf("%d points", len(history))))
	histCard := components.ContentCard("Balance History", hist.String(), widths[0])

	// Journal of this session
	innerW := components.CardInnerWidth(widths[1])
	var jr strings.Builder
	switch {
	case a.journal == nil:
		jr.WriteString(mutedStyle.Render("Journal disabled."))
	case a.journalErr != nil:
		jr.WriteString(redStyle.Render("Reading journal: " + a.journalErr.Error()))
	case len(a.recent) == 0:
		jr.WriteString(mutedStyle.Render("Nothing dispatched yet."))
	default:
		start := max(len(a.recent)-maxJournalRows, 0)
		for i := len(a.recent) - 1; i >= start; i-- {
			e := a.recent[i]
			mark, markStyle := "✓", greenStyle
			if !e.Accepted {
				mark, markStyle = "✗", redStyle
			}
			line := fmt.Sprintf("%3d %-16s %-14s %10s", e.Seq, e.Action, truncStr(e.Category, 14), e.Amount)
			jr.WriteString(markStyle.Render(mark + " "))
			jr.WriteString(valueStyle.Render(truncStr(line, innerW-2)))
			jr.WriteString("\n")
			if !e.Accepted && e.Error != "" {
				jr.WriteString(dimStyle.Render("    " + truncStr(e.Error, innerW-4)))
				jr.WriteString("\n")
			}
		}
		jr.WriteString(dimStyle.Render(fmt.Sprintf("%d actions this session", len(a.recent))))
	}
	title := "Journal"
	if a.exportPath != "" {
		title += "  → " + a.exportPath
	}
	journalCard := components.ContentCard(title, jr.String(), widths[1])

	if a.isCompactLayout() {
		return histCard + "\n" + journalCard
	}
	return components.CardRow([]string{histCard, journalCard})
}
