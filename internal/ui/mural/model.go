package mural

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
	"github.com/schoolquest/tui/internal/theme"
)

// PostsLoadedMsg carries the mural feed.
type PostsLoadedMsg struct {
	Posts []model.MuralPost
	Err   error
}

// PostActionMsg reports the outcome of creating or deleting a post.
type PostActionMsg struct {
	Err error
}

const loadTimeout = 30 * time.Second

// Model is the school mural: a newest-first social feed with a
// composer for new posts.
type Model struct {
	client  *api.Client
	keys    *keys.KeyMap
	user    model.User
	posts   []model.MuralPost
	input   textinput.Model
	cursor  int
	loading bool
	lastErr error
	width   int
	height  int
}

// New creates a mural screen model.
func New(client *api.Client, k *keys.KeyMap, user model.User, width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "share something with your school..."
	ti.Prompt = "> "
	ti.CharLimit = 500
	ti.Width = width - 8

	return Model{
		client:  client,
		keys:    k,
		user:    user,
		input:   ti,
		loading: true,
		width:   width,
		height:  height,
	}
}

// Init returns a command that loads the feed.
func (m Model) Init() tea.Cmd {
	return m.Load()
}

// Load fetches the mural feed.
func (m Model) Load() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		posts, err := client.MuralPosts(ctx)
		return PostsLoadedMsg{Posts: posts, Err: err}
	}
}

// InputFocused reports whether the composer owns the keyboard.
func (m Model) InputFocused() bool {
	return m.input.Focused()
}

// Update handles messages for the mural screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case PostsLoadedMsg:
		m.loading = false
		m.lastErr = msg.Err
		if msg.Err == nil {
			m.posts = msg.Posts
			if m.cursor >= len(m.posts) {
				m.cursor = 0
			}
		}
		return m, nil

	case PostActionMsg:
		if msg.Err != nil {
			m.lastErr = msg.Err
			return m, nil
		}
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
			m.input.Blur()
			if text == "" {
				return m, nil
			}
			return m, m.create(text)
		case "esc":
			m.input.Blur()
			return m, nil
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.posts)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "n":
		return m, m.input.Focus()
	case "d":
		if m.cursor < len(m.posts) {
			post := m.posts[m.cursor]
			if post.UserID == m.user.ID || m.user.IsStaff() {
				return m, m.delete(post.ID)
			}
		}
	}

	return m, nil
}

func (m Model) create(content string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		_, err := client.CreateMuralPost(ctx, content)
		return PostActionMsg{Err: err}
	}
}

func (m Model) delete(postID int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		return PostActionMsg{Err: client.DeleteMuralPost(ctx, postID)}
	}
}

// View renders the mural feed.
func (m Model) View() string {
	if m.loading {
		return theme.DimmedStyle.Render("Loading mural…")
	}

	var b strings.Builder
	b.WriteString(theme.HeaderStyle.Render("Mural"))
	b.WriteString("\n\n")

	if len(m.posts) == 0 {
		b.WriteString(theme.DimmedStyle.Render("Nothing here yet. Press n to post."))
		b.WriteString("\n")
	}

	maxRows := m.height - 10
	if maxRows < 1 {
		maxRows = 1
	}

	for i, post := range m.posts {
		if i >= maxRows {
			break
		}

		line := fmt.Sprintf(
			"%s %s  %s ❤ %d",
			lipgloss.NewStyle().Bold(true).Render(post.UserName),
			post.Content,
			theme.DimmedStyle.Render(post.CreatedAt.Format("Jan 02 15:04")),
			post.Likes,
		)

		if i == m.cursor {
			b.WriteString(theme.SelectedItemStyle.Render(line))
		} else {
			b.WriteString(theme.ListItemStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	if !m.input.Focused() {
		b.WriteString("\n")
		b.WriteString(theme.HelpStyle.Render("n new post | d delete own post"))
	}

	if m.lastErr != nil {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.ColorRed).
			Render(m.lastErr.Error()))
	}

	return theme.PanelStyle.Width(m.width - 4).Render(b.String())
}

// SetSize updates the screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 8
}
