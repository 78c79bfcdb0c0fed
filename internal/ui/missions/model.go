package missions

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/schoolquest/tui/internal/api"
	"github.com/schoolquest/tui/internal/keys"
	"github.com/schoolquest/tui/internal/model"
	"github.com/schoolquest/tui/internal/store"
	"github.com/schoolquest/tui/internal/theme"
)

// MissionsLoadedMsg is sent when assigned missions have been loaded
// from the local cache.
type MissionsLoadedMsg struct {
	Missions []model.AssignedMission
}

// PendingLoadedMsg is sent when the professor's validation queue has
// been fetched.
type PendingLoadedMsg struct {
	Pending []model.AssignedMission
	Err     error
}

// ActionDoneMsg reports the outcome of a complete/approve/reject call.
// The app triggers a missions refresh when Err is nil.
type ActionDoneMsg struct {
	Err error
}

// actionTimeout bounds a single mission mutation call.
const actionTimeout = 30 * time.Second

// Model is the mission dashboard: the student's assigned missions
// from the cache, or the validation queue for staff.
type Model struct {
	list      list.Model
	client    *api.Client
	cache     *store.CacheStore
	keys      *keys.KeyMap
	staffMode bool
	lastErr   error
	width     int
	height    int
}

// New creates a mission dashboard model. staffMode switches it to the
// professor's validation queue.
func New(client *api.Client, cache *store.CacheStore, k *keys.KeyMap, staffMode bool, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{showStudent: staffMode}, width, height-2)
	if staffMode {
		l.Title = "Pending validations"
	} else {
		l.Title = "Missions"
	}
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:      l,
		client:    client,
		cache:     cache,
		keys:      k,
		staffMode: staffMode,
		width:     width,
		height:    height,
	}
}

// Init returns a command that loads the initial mission set.
func (m Model) Init() tea.Cmd {
	return m.Load()
}

// Load returns a tea.Cmd that reloads the view's data: the cache for
// students, the API for the staff validation queue.
func (m Model) Load() tea.Cmd {
	if m.staffMode {
		client := m.client
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
			defer cancel()

			pending, err := client.PendingValidations(ctx)
			return PendingLoadedMsg{Pending: pending, Err: err}
		}
	}

	cache := m.cache
	return func() tea.Msg {
		missions, err := cache.GetMissions(context.Background())
		if err != nil {
			return MissionsLoadedMsg{}
		}
		return MissionsLoadedMsg{Missions: missions}
	}
}

// Update handles messages for the mission dashboard.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MissionsLoadedMsg:
		return m, m.setItems(msg.Missions)

	case PendingLoadedMsg:
		m.lastErr = msg.Err
		return m, m.setItems(msg.Pending)

	case ActionDoneMsg:
		m.lastErr = msg.Err
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) setItems(missions []model.AssignedMission) tea.Cmd {
	items := make([]list.Item, len(missions))
	for i, assigned := range missions {
		items[i] = MissionItem{Assigned: assigned}
	}
	return m.list.SetItems(items)
}

func (m Model) handleKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	selected, hasSelection := m.list.SelectedItem().(MissionItem)

	switch {
	case key.Matches(msg, m.keys.Submit):
		if m.staffMode || !hasSelection {
			return m, nil
		}
		if selected.Assigned.Status != model.MissionStatusPending {
			return m, nil
		}
		return m, m.complete(selected.Assigned.ID)

	case key.Matches(msg, m.keys.Approve):
		if !m.staffMode || !hasSelection {
			return m, nil
		}
		return m, m.validate(selected.Assigned.ID, true)

	case key.Matches(msg, m.keys.Reject):
		if !m.staffMode || !hasSelection {
			return m, nil
		}
		return m, m.validate(selected.Assigned.ID, false)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// complete submits the selected mission for validation.
func (m Model) complete(assignedID int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()

		return ActionDoneMsg{Err: client.CompleteMission(ctx, assignedID)}
	}
}

// validate approves or rejects the selected submission.
func (m Model) validate(submissionID int, approve bool) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()

		return ActionDoneMsg{Err: client.ValidateSubmission(ctx, submissionID, approve)}
	}
}

// View renders the mission dashboard.
func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}

	view := m.list.View()
	if m.lastErr != nil {
		errLine := lipgloss.NewStyle().
			Foreground(theme.ColorRed).
			Render(m.lastErr.Error())
		view = lipgloss.JoinVertical(lipgloss.Left, view, errLine)
	}
	return view
}

// renderEmptyState shows guidance text when no missions are available.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.staffMode {
		return style.Render("No submissions awaiting validation.")
	}
	return style.Render("No missions yet.\nPress r to refresh.")
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}
