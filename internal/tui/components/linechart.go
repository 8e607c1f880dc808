package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/bliss/internal/tui/theme"
)

// LineChart plots values left to right on a height-row grid. The y range
// always includes zero; points below zero are drawn in the theme's red and
// a dashed zero line is shown when the series goes negative. Only the first
// and last labels are printed under the axis.
func LineChart(values []float64, labels []string, color lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(values, color)
	}
	t := theme.Active

	lo, hi := seriesRange(values)
	lo = math.Min(lo, 0)
	hi = math.Max(hi, 0)
	if hi == lo {
		hi = lo + 1
	}

	yLabelW := max(len(formatChartLabel(hi)), len(formatChartLabel(lo))) + 1
	plotW := width - yLabelW - 1
	if plotW < 5 {
		plotW = 5
	}

	rowOf := func(v float64) int {
		return int(math.Round((v - lo) / (hi - lo) * float64(height-1)))
	}

	grid := make([][]rune, height)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(" ", plotW))
	}

	zeroRow := rowOf(0)
	if lo < 0 {
		for x := 0; x < plotW; x += 2 {
			grid[zeroRow][x] = '╌'
		}
	}

	n := len(values)
	colOf := func(i int) int {
		if n == 1 {
			return 0
		}
		return i * (plotW - 1) / (n - 1)
	}

	// Interpolate between consecutive points so the line reads as continuous.
	for i := 0; i < n-1; i++ {
		x0, x1 := colOf(i), colOf(i+1)
		for x := x0 + 1; x < x1; x++ {
			frac := float64(x-x0) / float64(x1-x0)
			v := values[i] + (values[i+1]-values[i])*frac
			grid[rowOf(v)][x] = '·'
		}
	}
	for i, v := range values {
		grid[rowOf(v)][colOf(i)] = '●'
	}

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	upStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	downStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)

	var b strings.Builder
	for r := height - 1; r >= 0; r-- {
		label := ""
		switch {
		case r == height-1:
			label = formatChartLabel(hi)
		case r == 0:
			label = formatChartLabel(lo)
		case lo < 0 && r == zeroRow:
			label = "0"
		}
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, label)))
		b.WriteString(axisStyle.Render("│"))

		style := upStyle
		if r < zeroRow {
			style = downStyle
		}
		b.WriteString(style.Render(string(grid[r])))
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(strings.Repeat(" ", yLabelW)))
	b.WriteString(axisStyle.Render("└" + strings.Repeat("─", plotW)))

	if len(labels) == n {
		first := labels[0]
		last := ""
		if n > 1 {
			last = labels[n-1]
		}
		gap := plotW - lipgloss.Width(first) - lipgloss.Width(last)
		if gap < 1 {
			last = ""
			gap = max(plotW-lipgloss.Width(first), 0)
		}
		b.WriteString("\n")
		b.WriteString(axisStyle.Render(strings.Repeat(" ", yLabelW+1) + first + strings.Repeat(" ", gap) + last))
	}

	return b.String()
}
