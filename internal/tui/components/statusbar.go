package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/bliss/internal/tui/theme"
)

// RenderStatusBar renders the bottom status bar: key hints on the left,
// budget usage on the right.
func RenderStatusBar(width int, usedPct float64, hasBudget bool) string {
	t := theme.Active

	barStyle := lipgloss.NewStyle().Background(t.Surface)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	hints := []struct{ key, desc string }{
		{"n", "expense"},
		{"a", "add"},
		{"d", "delete"},
		{"b", "budget"},
		{"u", "custom"},
		{"?", "help"},
		{"q", "quit"},
	}
	right := ""
	if hasBudget {
		right = CompactBudgetBar("Used", usedPct, 24) + hintStyle.Render(" ")
	}
	avail := width - lipgloss.Width(right)
	if avail < 40 {
		// Narrow terminal: drop the usage gauge first.
		right = ""
		avail = width
	}

	left := hintStyle.Render(" ")
	for i, h := range hints {
		part := keyStyle.Render("["+h.key+"]") + hintStyle.Render(h.desc)
		if i > 0 {
			part = hintStyle.Render("  ") + part
		}
		if lipgloss.Width(left)+lipgloss.Width(part) > avail {
			break
		}
		left += part
	}

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return left + barStyle.Render(strings.Repeat(" ", padding)) + right
}
