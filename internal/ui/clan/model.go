package clan

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/schoolquest/tui/internal/api"
	"github.com/schoolquest/tui/internal/keys"
	"github.com/schoolquest/tui/internal/model"
	"github.com/schoolquest/tui/internal/store"
	"github.com/schoolquest/tui/internal/theme"
)

// LoadedMsg carries the result of a full clan screen load.
type LoadedMsg struct {
	Clan     *model.Clan
	Members  []model.ClanMember
	Messages []model.ChatMessage
	Invites  []model.ClanInvite
	Err      error
}

// SentMsg carries the server's echo of a sent chat message.
type SentMsg struct {
	Message *model.ChatMessage
	Err     error
}

// InviteActionMsg reports the outcome of accepting an invite or
// leaving the clan. The app reloads the screen when Err is nil.
type InviteActionMsg struct {
	Err error
}

const (
	loadTimeout = 30 * time.Second
	historyPage = 50
)

// Model is the clan screen: member roster plus chat room, or the
// pending invite list for users without a clan.
type Model struct {
	client *api.Client
	cache  *store.CacheStore
	keys   *keys.KeyMap
	userID int

	clan     *model.Clan
	members  []model.ClanMember
	messages []model.ChatMessage
	invites  []model.ClanInvite

	input   textinput.Model
	cursor  int
	loading bool
	lastErr error
	width   int
	height  int
}

// New creates a clan screen model.
func New(client *api.Client, cache *store.CacheStore, k *keys.KeyMap, userID, width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "message your clan..."
	ti.Prompt = "> "
	ti.CharLimit = 500
	ti.Width = width - 8

	return Model{
		client:  client,
		cache:   cache,
		keys:    k,
		userID:  userID,
		input:   ti,
		loading: true,
		width:   width,
		height:  height,
	}
}

// Init returns a command that loads the clan screen data.
func (m Model) Init() tea.Cmd {
	return m.Load()
}

// Load fetches the user's clan, members, chat history, and pending
// invites. Chat history falls back to the local cache when the API is
// unreachable.
func (m Model) Load() tea.Cmd {
	client := m.client
	cache := m.cache

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		clan, err := client.MyClan(ctx)
		if err != nil {
			return LoadedMsg{Err: err}
		}

		if clan == nil {
			invites, err := client.MyInvites(ctx)
			return LoadedMsg{Invites: invites, Err: err}
		}

		members, err := client.ClanMembers(ctx, clan.ID)
		if err != nil {
			return LoadedMsg{Clan: clan, Err: err}
		}

		messages, err := client.ClanMessages(ctx, clan.ID, 0, historyPage)
		if err != nil {
			// Offline fallback: serve what the cache has.
			messages, _ = cache.GetMessages(ctx, clan.ID, historyPage)
		} else {
			_ = cache.UpsertMessages(ctx, messages)
		}

		return LoadedMsg{Clan: clan, Members: members, Messages: messages}
	}
}

// InputFocused reports whether the chat input owns the keyboard. The
// app suppresses global shortcuts while typing.
func (m Model) InputFocused() bool {
	return m.input.Focused()
}

// ClanID returns the current clan's ID, or 0 when the user has none.
func (m Model) ClanID() int {
	if m.clan == nil {
		return 0
	}
	return m.clan.ID
}

// MergeMessage appends an incoming chat message unless a message with
// the same ID is already present. Sends are appended locally and then
// echoed over the realtime channel, so each ID lands at most once.
func (m *Model) MergeMessage(msg model.ChatMessage) {
	if m.clan == nil || msg.ClanID != m.clan.ID {
		return
	}
	for _, existing := range m.messages {
		if existing.ID == msg.ID {
			return
		}
	}
	m.messages = append(m.messages, msg)
}

// Update handles messages for the clan screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		m.loading = false
		m.lastErr = msg.Err
		m.clan = msg.Clan
		m.members = msg.Members
		m.messages = msg.Messages
		m.invites = msg.Invites
		return m, nil

	case SentMsg:
		if msg.Err != nil {
			m.lastErr = msg.Err
			return m, nil
		}
		if msg.Message != nil {
			m.MergeMessage(*msg.Message)
			cache := m.cache
			echo := *msg.Message
			return m, func() tea.Msg {
				_ = cache.UpsertMessages(context.Background(), []model.ChatMessage{echo})
				return nil
			}
		}
		return m, nil

	case InviteActionMsg:
		if msg.Err != nil {
			m.lastErr = msg.Err
			return m, nil
		}
		m.loading = true
		return m, m.Load()

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	return m, nil
}

func (m Model) handleKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.input.Focused() {
		switch msg.String() {
		case "enter":
			text := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if text == "" {
				return m, nil
			}
			return m, m.send(text)
		case "esc":
			m.input.Blur()
			return m, nil
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	if m.clan == nil {
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.invites)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "enter":
			if m.cursor < len(m.invites) {
				return m, m.acceptInvite(m.invites[m.cursor].ID)
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "i", "enter":
		return m, m.input.Focus()
	case "L":
		return m, m.leave()
	}

	return m, nil
}

// send posts a chat message; the echo is merged on SentMsg.
func (m Model) send(text string) tea.Cmd {
	client := m.client
	clanID := m.ClanID()

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		echo, err := client.SendClanMessage(ctx, clanID, text)
		return SentMsg{Message: echo, Err: err}
	}
}

func (m Model) acceptInvite(inviteID int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		return InviteActionMsg{Err: client.AcceptInvite(ctx, inviteID)}
	}
}

func (m Model) leave() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		return InviteActionMsg{Err: client.LeaveClan(ctx)}
	}
}

// View renders the clan screen.
func (m Model) View() string {
	if m.loading {
		return theme.DimmedStyle.Render("Loading clan…")
	}

	if m.clan == nil {
		return m.renderNoClan()
	}

	roster := m.renderRoster()
	chat := m.renderChat()

	body := lipgloss.JoinHorizontal(lipgloss.Top, roster, chat)

	if m.lastErr != nil {
		errLine := lipgloss.NewStyle().
			Foreground(theme.ColorRed).
			Render(m.lastErr.Error())
		body = lipgloss.JoinVertical(lipgloss.Left, body, errLine)
	}

	return body
}

func (m Model) renderNoClan() string {
	var b strings.Builder
	b.WriteString(theme.HeaderStyle.Render("No clan"))
	b.WriteString("\n\n")

	if len(m.invites) == 0 {
		b.WriteString(theme.DimmedStyle.Render("You have no pending invites."))
	} else {
		b.WriteString("Pending invites:\n")
		for i, inv := range m.invites {
			line := fmt.Sprintf("%s (from %s)", inv.ClanName, inv.FromName)
			if i == m.cursor {
				b.WriteString(theme.SelectedItemStyle.Render(line))
			} else {
				b.WriteString(theme.ListItemStyle.Render(line))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(theme.HelpStyle.Render("enter accept invite"))
	}

	return theme.PanelStyle.Width(m.width - 4).Render(b.String())
}

func (m Model) renderRoster() string {
	var b strings.Builder
	b.WriteString(theme.HeaderStyle.Render(m.clan.Name))
	b.WriteString("\n\n")

	for _, member := range m.members {
		line := member.UserName
		if member.UserID == m.clan.LeaderID {
			line = "👑 " + line
		}
		b.WriteString(theme.ListItemStyle.Render(line))
		b.WriteString("\n")
	}

	width := m.width / 3
	if width < 20 {
		width = 20
	}
	return theme.PanelStyle.Width(width).Height(m.height - 4).Render(b.String())
}

func (m Model) renderChat() string {
	var b strings.Builder

	visible := m.messages
	maxRows := m.height - 10
	if maxRows > 0 && len(visible) > maxRows {
		visible = visible[len(visible)-maxRows:]
	}

	for _, msg := range visible {
		name := msg.UserName
		if msg.UserID == m.userID {
			name = "you"
		}
		b.WriteString(fmt.Sprintf(
			"%s %s %s\n",
			lipgloss.NewStyle().Bold(true).Render(name),
			msg.Message,
			theme.DimmedStyle.Render(msg.CreatedAt.Format("15:04")),
		))
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	if !m.input.Focused() {
		b.WriteString("\n")
		b.WriteString(theme.HelpStyle.Render("i type | L leave clan"))
	}

	width := m.width - m.width/3 - 6
	if width < 30 {
		width = 30
	}
	return theme.PanelStyle.Width(width).Height(m.height - 4).Render(b.String())
}

// SetSize updates the screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 8
}
