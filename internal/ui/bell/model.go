package bell

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/schoolquest/tui/internal/keys"
	"github.com/schoolquest/tui/internal/model"
	"github.com/schoolquest/tui/internal/notify"
	"github.com/schoolquest/tui/internal/theme"
)

// NavigateMsg is sent when selecting a notification should move the
// app to another screen.
type NavigateMsg struct {
	Screen model.Screen
}

// CloseMsg is sent when the dropdown should close.
type CloseMsg struct{}

// PermissionAnsweredMsg carries the user's answer to the one-shot
// desktop notification permission prompt.
type PermissionAnsweredMsg struct {
	Granted bool
}

// Model is the notification bell dropdown: the full history of the
// session's notifications, newest first, with mark-read and clear
// actions. It is a passive reader of the shared store plus the two
// narrow mutators (mark read, mark all read).
type Model struct {
	store     *notify.Store
	keys      *keys.KeyMap
	cursor    int
	prompting bool
	width     int
	height    int
}

// New creates a bell dropdown over the shared notification store.
func New(store *notify.Store, k *keys.KeyMap, width, height int) Model {
	return Model{
		store:  store,
		keys:   k,
		width:  width,
		height: height,
	}
}

// SetSize updates the dropdown dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// PromptPermission switches the dropdown into the one-shot desktop
// permission prompt. The app only calls this while the permission
// state is still undetermined.
func (m *Model) PromptPermission() {
	m.prompting = true
}

// Update handles messages for the bell dropdown.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.prompting {
		switch keyMsg.String() {
		case "y", "Y":
			m.prompting = false
			return m, func() tea.Msg { return PermissionAnsweredMsg{Granted: true} }
		case "n", "N", "esc":
			m.prompting = false
			return m, func() tea.Msg { return PermissionAnsweredMsg{Granted: false} }
		}
		return m, nil
	}

	items := m.store.All()

	switch keyMsg.String() {
	case "j", "down":
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "enter":
		if m.cursor < len(items) {
			n := items[m.cursor]
			m.store.MarkRead(n.ID)
			if target := n.Type.Target(); target != model.ScreenNone {
				return m, func() tea.Msg { return NavigateMsg{Screen: target} }
			}
		}
	case "m":
		m.store.MarkAllRead()
	case "C":
		m.store.Clear()
		m.cursor = 0
		return m, func() tea.Msg { return CloseMsg{} }
	case "esc", "b":
		return m, func() tea.Msg { return CloseMsg{} }
	}

	return m, nil
}

// View renders the dropdown.
func (m Model) View() string {
	if m.prompting {
		prompt := lipgloss.JoinVertical(lipgloss.Left,
			theme.HeaderStyle.Render("Desktop notifications"),
			"",
			"Mirror notifications to your desktop?",
			theme.HelpStyle.Render("y yes | n no"),
		)
		return theme.PanelStyle.Width(m.width - 4).Render(prompt)
	}

	items := m.store.All()

	var b strings.Builder
	b.WriteString(theme.HeaderStyle.Render("Notifications"))
	b.WriteString("\n\n")

	if len(items) == 0 {
		b.WriteString(theme.DimmedStyle.Render("No notifications"))
	}

	maxRows := m.height - 8
	if maxRows < 1 {
		maxRows = 1
	}

	for i, n := range items {
		if i >= maxRows {
			b.WriteString(theme.DimmedStyle.Render(
				fmt.Sprintf("… %d more", len(items)-maxRows),
			))
			break
		}

		line := fmt.Sprintf("%s %s — %s %s",
			n.Type.Icon(),
			n.Title,
			n.Message,
			theme.DimmedStyle.Render(relativeTime(n.Timestamp)),
		)
		if !n.Read {
			line = theme.UnreadDotStyle.Render("●") + " " + line
		} else {
			line = "  " + line
		}

		if i == m.cursor {
			b.WriteString(theme.SelectedItemStyle.Render(line))
		} else {
			b.WriteString(theme.ListItemStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.HelpStyle.Render("enter open | m mark all read | C clear all | esc close"))

	return theme.PanelStyle.Width(m.width - 4).Render(b.String())
}

// Badge returns the bell badge for the given unread count, capped at
// a display value of 9+.
func Badge(unread int) string {
	if unread <= 0 {
		return ""
	}
	label := fmt.Sprintf("%d", unread)
	if unread > 9 {
		label = "9+"
	}
	return theme.BadgeStyle.Render("🔔 " + label)
}

// relativeTime formats a timestamp as a short "how long ago" string.
func relativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
