package reports

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/schoolquest/tui/internal/api"
	"github.com/schoolquest/tui/internal/model"
	"github.com/schoolquest/tui/internal/theme"
)

// LoadedMsg carries the school analytics for the reports screen.
type LoadedMsg struct {
	Overview   *model.SchoolOverview
	Timeline   []model.ActivityPoint
	Categories []model.CategoryCount
	Err        error
}

const (
	loadTimeout  = 30 * time.Second
	timelineDays = 30
)

// Model is the school reports screen for managers and admins: the
// engagement overview, a recent-activity strip, and the mission
// category spread.
type Model struct {
	client *api.Client

	overview   *model.SchoolOverview
	timeline   []model.ActivityPoint
	categories []model.CategoryCount

	loading bool
	lastErr error
	width   int
	height  int
}

// New creates a reports screen model.
func New(client *api.Client, width, height int) Model {
	return Model{
		client:  client,
		loading: true,
		width:   width,
		height:  height,
	}
}

// Init returns a command that loads the analytics.
func (m Model) Init() tea.Cmd {
	return m.Load()
}

// Load fetches the overview, the activity timeline, and the category
// distribution in one command.
func (m Model) Load() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		overview, err := client.SchoolOverview(ctx)
		if err != nil {
			return LoadedMsg{Err: err}
		}

		timeline, err := client.ActivityTimeline(ctx, timelineDays)
		if err != nil {
			return LoadedMsg{Overview: overview, Err: err}
		}

		categories, err := client.CategoryDistribution(ctx)
		return LoadedMsg{
			Overview:   overview,
			Timeline:   timeline,
			Categories: categories,
			Err:        err,
		}
	}
}

// Update handles messages for the reports screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if loaded, ok := msg.(LoadedMsg); ok {
		m.loading = false
		m.lastErr = loaded.Err
		if loaded.Overview != nil {
			m.overview = loaded.Overview
		}
		m.timeline = loaded.Timeline
		m.categories = loaded.Categories
	}
	return m, nil
}

// View renders the reports screen.
func (m Model) View() string {
	if m.loading {
		return theme.DimmedStyle.Render("Loading reports…")
	}

	var b strings.Builder
	b.WriteString(theme.HeaderStyle.Render("School reports"))
	b.WriteString("\n\n")

	if m.overview == nil {
		b.WriteString(theme.DimmedStyle.Render("No report data available."))
	} else {
		b.WriteString(fmt.Sprintf(
			"👥 %d students    📋 %d missions    ✅ %d validated this month    ⌀ %.0f XP\n\n",
			m.overview.TotalStudents,
			m.overview.TotalMissions,
			m.overview.MissionsThisMonth,
			m.overview.AvgXP,
		))

		if len(m.overview.TopStudents) > 0 {
			b.WriteString(lipgloss.NewStyle().Bold(true).Render("Top students"))
			b.WriteString("\n")
			for i, s := range m.overview.TopStudents {
				b.WriteString(theme.ListItemStyle.Render(fmt.Sprintf(
					"%2d. %s  %s",
					i+1, s.Name,
					theme.DimmedStyle.Render(fmt.Sprintf("lvl %d · %d XP", s.Level, s.XP)),
				)))
				b.WriteString("\n")
			}
			b.WriteString("\n")
		}
	}

	if len(m.timeline) > 0 {
		b.WriteString(lipgloss.NewStyle().Bold(true).Render(
			fmt.Sprintf("Validated missions, last %d days", timelineDays),
		))
		b.WriteString("\n")
		b.WriteString(renderTimeline(m.timeline))
		b.WriteString("\n\n")
	}

	if len(m.categories) > 0 {
		b.WriteString(lipgloss.NewStyle().Bold(true).Render("Missions by category"))
		b.WriteString("\n")
		for _, c := range m.categories {
			b.WriteString(theme.ListItemStyle.Render(
				fmt.Sprintf("%-14s %d", c.Category, c.Count),
			))
			b.WriteString("\n")
		}
	}

	if m.lastErr != nil {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.ColorRed).
			Render(m.lastErr.Error()))
	}

	return theme.PanelStyle.Width(m.width - 4).Render(b.String())
}

// renderTimeline draws the daily counts as a compact sparkline.
func renderTimeline(points []model.ActivityPoint) string {
	levels := []rune("▁▂▃▄▅▆▇█")

	max := 0
	for _, p := range points {
		if p.Missions > max {
			max = p.Missions
		}
	}
	if max == 0 {
		return theme.DimmedStyle.Render("no activity")
	}

	var bar strings.Builder
	for _, p := range points {
		idx := p.Missions * (len(levels) - 1) / max
		bar.WriteRune(levels[idx])
	}

	total := 0
	for _, p := range points {
		total += p.Missions
	}

	return lipgloss.NewStyle().Foreground(theme.ColorGreen).Render(bar.String()) +
		"  " + theme.DimmedStyle.Render(fmt.Sprintf("%d total", total))
}

// SetSize updates the screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
