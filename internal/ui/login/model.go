package login

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/schoolquest/tui/internal/api"
	"github.com/schoolquest/tui/internal/theme"
)

// SuccessMsg is dispatched after a successful token exchange. The app
// stores the token in the session and then loads the profile; the
// client's token source reads from the session, so the order matters.
type SuccessMsg struct {
	Token string
}

// failedMsg is handled internally to surface the error and restart the form.
type failedMsg struct {
	err error
}

// loginTimeout bounds the token exchange plus profile fetch.
const loginTimeout = 30 * time.Second

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	email    string
	password string
}

// Model is the Bubble Tea model for the login form.
type Model struct {
	client *api.Client
	form   *huh.Form
	fb     *formBindings
	err    error
	busy   bool
	width  int
	height int
}

// New creates a login form model. The form is built up front so the
// screen is usable from the program's first Init.
func New(client *api.Client, width, height int) Model {
	m := Model{
		client: client,
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
	m.form = m.buildForm()
	return m
}

// Init starts the form built at construction time.
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

// Start (re)initializes the form. Call before first Update and after a
// failed attempt.
func (m *Model) Start() tea.Cmd {
	m.busy = false
	m.fb.password = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the login form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if failed, ok := msg.(failedMsg); ok {
		m.err = failed.err
		return m, m.Start()
	}

	if m.form == nil || m.busy {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.busy = true
		return m, m.authenticate()
	}
	if m.form.State == huh.StateAborted {
		return m, m.Start()
	}

	return m, cmd
}

// View renders the login form.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	parts := []string{titleStyle.Render("SchoolQuest — sign in")}

	if m.err != nil {
		parts = append(parts, lipgloss.NewStyle().
			Foreground(theme.ColorRed).
			Render(m.err.Error()))
	}

	if m.busy {
		parts = append(parts, theme.DimmedStyle.Render("Signing in…"))
	} else if m.form != nil {
		parts = append(parts, m.form.View())
	}

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(strings.Join(parts, "\n"))
}

// authenticate exchanges the credentials for a token.
func (m Model) authenticate() tea.Cmd {
	client := m.client
	email := m.fb.email
	password := m.fb.password

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loginTimeout)
		defer cancel()

		token, err := client.Login(ctx, email, password)
		if err != nil {
			return failedMsg{err: err}
		}

		return SuccessMsg{Token: token.AccessToken}
	}
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@school.example").
				Value(&m.fb.email).
				Validate(validateEmail),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.password).
				Validate(validateRequired("Password")),
		),
	).WithWidth(m.formWidth())
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 80 {
		w = 80
	}
	return w
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateEmail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("Email is required")
	}
	if !strings.Contains(s, "@") {
		return fmt.Errorf("invalid email address")
	}
	return nil
}
