package profile

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/schoolquest/tui/internal/model"
	"github.com/schoolquest/tui/internal/theme"
)

// Model is the profile screen: identity, level progress, and streak
// for the signed-in user.
type Model struct {
	user   model.User
	width  int
	height int
}

// New creates a profile screen model.
func New(user model.User, width, height int) Model {
	return Model{
		user:   user,
		width:  width,
		height: height,
	}
}

// SetUser replaces the displayed user after a profile refresh.
func (m *Model) SetUser(user model.User) {
	m.user = user
}

// Update handles messages for the profile screen.
func (m Model) Update(_ tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the profile.
func (m Model) View() string {
	info := model.LevelInfoFor(m.user.XP)

	var b strings.Builder
	b.WriteString(theme.HeaderStyle.Render(m.user.Name))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf(
		"%s %s  %s\n",
		info.RankIcon,
		lipgloss.NewStyle().Bold(true).Render(info.RankTitle),
		theme.DimmedStyle.Render(fmt.Sprintf("level %d", info.Level)),
	))

	b.WriteString(fmt.Sprintf(
		"%s %s\n\n",
		renderProgressBar(info.ProgressPercent, 30),
		theme.DimmedStyle.Render(fmt.Sprintf("%d/%d XP", info.XPIntoLevel, 100)),
	))

	b.WriteString(fmt.Sprintf("🪙 %d coins    🔥 %d day streak\n\n", m.user.Coins, m.user.Streak))

	if m.user.SchoolName != "" {
		b.WriteString(theme.DimmedStyle.Render(m.user.SchoolName))
		if m.user.GradeName != "" {
			b.WriteString(theme.DimmedStyle.Render(" · " + m.user.GradeName))
		}
		b.WriteString("\n")
	}
	if m.user.Bio != "" {
		b.WriteString("\n")
		b.WriteString(m.user.Bio)
		b.WriteString("\n")
	}

	return theme.PanelStyle.Width(m.width - 4).Render(b.String())
}

// renderProgressBar draws a fixed-width XP progress bar.
func renderProgressBar(percent, width int) string {
	filled := width * percent / 100
	if filled > width {
		filled = width
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return lipgloss.NewStyle().Foreground(theme.ColorGreen).Render(bar)
}

// SetSize updates the screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
