package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/schoolquest/tui/internal/model"
	"github.com/schoolquest/tui/internal/theme"
)

// RenderToasts renders the transient toast stack as a vertical column,
// newest entry on top.
func RenderToasts(items []model.Notification) string {
	if len(items) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(items))
	for _, n := range items {
		body := lipgloss.JoinVertical(
			lipgloss.Left,
			lipgloss.NewStyle().Bold(true).Render(n.Type.Icon()+" "+n.Title),
			n.Message,
		)
		rendered = append(rendered, theme.ToastStyle.Render(body))
	}

	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}

// OverlayToasts places the toast stack in the top-right corner of a
// fully rendered view, below the header row. Toast lines replace the
// underlying content lines; terminals have no transparency, so the
// stack simply owns its corner while visible.
func OverlayToasts(view string, toasts string, width int) string {
	if toasts == "" {
		return view
	}

	viewLines := strings.Split(view, "\n")
	toastLines := strings.Split(toasts, "\n")

	for i, tl := range toastLines {
		row := i + 1
		if row >= len(viewLines) {
			break
		}

		pad := width - lipgloss.Width(tl)
		if pad < 0 {
			pad = 0
		}
		viewLines[row] = lipgloss.NewStyle().Width(pad).Render("") + tl
	}

	return strings.Join(viewLines, "\n")
}
