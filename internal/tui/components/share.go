package components

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/bliss/internal/tui/theme"
)

// ShareSegment is one category's slice of a proportion chart.
type ShareSegment struct {
	Label string
	Value string  // preformatted amount shown in the legend
	Share float64 // 0-1
	Muted bool    // drawn dimmed, e.g. archived categories
}

// ShareChart renders a stacked proportion bar followed by a legend, one
// colored row per segment. Segment widths sum to exactly width.
func ShareChart(segments []ShareSegment, width int) string {
	if len(segments) == 0 || width <= 0 {
		return ""
	}
	t := theme.Active

	shares := make([]float64, len(segments))
	for i, s := range segments {
		shares[i] = s.Share
	}
	widths := apportion(shares, width)

	var bar strings.Builder
	for i, w := range widths {
		if w == 0 {
			continue
		}
		style := lipgloss.NewStyle().Foreground(segmentColor(t, i, segments[i].Muted)).Background(t.Surface)
		bar.WriteString(style.Render(strings.Repeat("█", w)))
	}

	labelW := 0
	for _, s := range segments {
		labelW = max(labelW, lipgloss.Width(s.Label))
	}

	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var b strings.Builder
	b.WriteString(bar.String())
	for i, s := range segments {
		swatch := lipgloss.NewStyle().Foreground(segmentColor(t, i, s.Muted)).Background(t.Surface).Render("■ ")
		style := textStyle
		if s.Muted {
			style = mutedStyle
		}
		pad := strings.Repeat(" ", labelW-lipgloss.Width(s.Label))
		b.WriteString("\n")
		b.WriteString(swatch)
		b.WriteString(style.Render(s.Label + pad))
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  %6.1f%%  ", s.Share*100)))
		b.WriteString(style.Render(s.Value))
	}
	return b.String()
}

func segmentColor(t theme.Theme, i int, muted bool) lipgloss.Color {
	if muted {
		return t.TextDim
	}
	return t.SliceColor(i)
}

// apportion splits total cells by fractions using largest remainders.
func apportion(fractions []float64, total int) []int {
	out := make([]int, len(fractions))
	sum := 0.0
	for _, f := range fractions {
		sum += math.Max(f, 0)
	}
	if sum == 0 {
		return out
	}

	type rem struct {
		idx  int
		frac float64
	}
	rems := make([]rem, len(fractions))
	used := 0
	for i, f := range fractions {
		exact := math.Max(f, 0) / sum * float64(total)
		out[i] = int(exact)
		used += out[i]
		rems[i] = rem{i, exact - float64(out[i])}
	}
	sort.SliceStable(rems, func(a, b int) bool { return rems[a].frac > rems[b].frac })
	for i := 0; used < total && i < len(rems); i++ {
		out[rems[i].idx]++
		used++
	}
	return out
}
