package ranking

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/schoolquest/tui/internal/model"
	"github.com/schoolquest/tui/internal/store"
	"github.com/schoolquest/tui/internal/theme"
)

// LoadedMsg carries the cached leaderboard rows.
type LoadedMsg struct {
	Entries []model.RankingEntry
}

// Model is the school XP leaderboard. It reads from the local cache;
// the background refresher keeps the cache current.
type Model struct {
	cache   *store.CacheStore
	entries []model.RankingEntry
	width   int
	height  int
}

// New creates a ranking screen model.
func New(cache *store.CacheStore, width, height int) Model {
	return Model{
		cache:  cache,
		width:  width,
		height: height,
	}
}

// Init returns a command that loads the leaderboard from the cache.
func (m Model) Init() tea.Cmd {
	return m.Load()
}

// Load reads the leaderboard from the cache.
func (m Model) Load() tea.Cmd {
	cache := m.cache
	return func() tea.Msg {
		entries, err := cache.GetRanking(context.Background())
		if err != nil {
			return LoadedMsg{}
		}
		return LoadedMsg{Entries: entries}
	}
}

// Update handles messages for the ranking screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if loaded, ok := msg.(LoadedMsg); ok {
		m.entries = loaded.Entries
	}
	return m, nil
}

// View renders the leaderboard.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(theme.HeaderStyle.Render("School ranking"))
	b.WriteString("\n\n")

	if len(m.entries) == 0 {
		b.WriteString(theme.DimmedStyle.Render("No ranking data yet. Press r to refresh."))
	}

	for i, entry := range m.entries {
		medal := fmt.Sprintf("%2d.", i+1)
		switch i {
		case 0:
			medal = "🥇"
		case 1:
			medal = "🥈"
		case 2:
			medal = "🥉"
		}

		info := model.LevelInfoFor(entry.XP)
		line := fmt.Sprintf(
			"%s %s  %s %s  %s",
			medal,
			entry.Name,
			info.RankIcon,
			theme.DimmedStyle.Render(fmt.Sprintf("lvl %d · %d XP", entry.Level, entry.XP)),
			theme.DimmedStyle.Render(entry.Grade),
		)
		b.WriteString(theme.ListItemStyle.Render(line))
		b.WriteString("\n")
	}

	return theme.PanelStyle.Width(m.width - 4).Render(b.String())
}

// SetSize updates the screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
