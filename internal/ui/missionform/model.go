package missionform

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/schoolquest/tui/internal/api"
	"github.com/schoolquest/tui/internal/model"
	"github.com/schoolquest/tui/internal/theme"
)

// CreatedMsg is dispatched when the mission has been created on the server.
type CreatedMsg struct {
	Mission model.Mission
}

// CancelMsg is dispatched when the user abandons the form.
type CancelMsg struct{}

// failedMsg surfaces a server error and restarts the form.
type failedMsg struct {
	err error
}

const submitTimeout = 30 * time.Second

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title       string
	description string
	xp          string
	coins       string
	category    string
}

// Model is the Bubble Tea model for the staff mission creation form.
type Model struct {
	client *api.Client
	form   *huh.Form
	fb     *formBindings
	err    error
	width  int
	height int
}

// New creates a mission form model.
func New(client *api.Client, width, height int) Model {
	return Model{
		client: client,
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Start initializes the form for a new mission.
func (m *Model) Start() tea.Cmd {
	m.fb.title = ""
	m.fb.description = ""
	m.fb.xp = "10"
	m.fb.coins = "5"
	m.fb.category = "geral"
	m.form = m.buildForm()
	return m.form.Init()
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the mission form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if failed, ok := msg.(failedMsg); ok {
		m.err = failed.err
		return m, m.Start()
	}

	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.submit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the mission form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	parts := []string{titleStyle.Render("New Mission")}
	if m.err != nil {
		parts = append(parts, lipgloss.NewStyle().
			Foreground(theme.ColorRed).
			Render(m.err.Error()))
	}
	parts = append(parts, m.form.View())

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(strings.Join(parts, "\n"))
}

// submit creates the mission on the server.
func (m Model) submit() tea.Cmd {
	client := m.client
	xp, _ := strconv.Atoi(m.fb.xp)
	coins, _ := strconv.Atoi(m.fb.coins)

	payload := model.MissionCreate{
		Title:       m.fb.title,
		Description: m.fb.description,
		XP:          xp,
		Coins:       coins,
		Category:    m.fb.category,
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
		defer cancel()

		created, err := client.CreateMission(ctx, payload)
		if err != nil {
			return failedMsg{err: err}
		}
		return CreatedMsg{Mission: *created}
	}
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("What should students do?").
				Value(&m.fb.title).
				Validate(validateRequired("Title")),
			huh.NewText().
				Title("Description").
				Placeholder("Optional details...").
				Value(&m.fb.description),
			huh.NewInput().
				Title("XP reward").
				Value(&m.fb.xp).
				Validate(validatePositiveInt("XP reward")),
			huh.NewInput().
				Title("Coin reward").
				Value(&m.fb.coins).
				Validate(validatePositiveInt("Coin reward")),
			huh.NewSelect[string]().
				Title("Category").
				Options(
					huh.NewOption("General", "geral"),
					huh.NewOption("Study", "estudo"),
					huh.NewOption("Behavior", "comportamento"),
					huh.NewOption("Sports", "esporte"),
				).
				Value(&m.fb.category),
		),
	).WithWidth(m.formWidth())
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
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

func validatePositiveInt(fieldName string) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || n < 0 {
			return fmt.Errorf("%s must be a non-negative number", fieldName)
		}
		return nil
	}
}
