package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/bliss/internal/tui/theme"
)

// NoticeLevel selects the color of a notice.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeSuccess
	NoticeWarning
	NoticeError
)

// RenderNotice renders a one-line notification banner across width.
// An empty message renders an empty string.
func RenderNotice(level NoticeLevel, message string, width int) string {
	if message == "" {
		return ""
	}
	t := theme.Active

	var fg lipgloss.Color
	icon := "●"
	switch level {
	case NoticeSuccess:
		fg, icon = t.GreenBright, "✔"
	case NoticeWarning:
		fg, icon = t.Orange, "▲"
	case NoticeError:
		fg, icon = t.Red, "✖"
	default:
		fg = t.Accent
	}

	style := lipgloss.NewStyle().
		Foreground(fg).
		Background(t.SurfaceHover).
		Bold(true).
		Width(width).
		MaxWidth(width).
		Padding(0, 1)
	hint := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.SurfaceHover).Render("  [esc] dismiss")

	return style.Render(icon + " " + message + hint)
}
