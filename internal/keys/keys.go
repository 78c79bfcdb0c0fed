package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Selection
	Select key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Screens
	Dashboard key.Binding
	Clan      key.Binding
	Mural     key.Binding
	Shop      key.Binding
	Ranking   key.Binding
	Profile   key.Binding
	Reports   key.Binding

	// Notifications
	Bell        key.Binding
	MarkAllRead key.Binding
	ClearAll    key.Binding

	// Help toggle
	Help key.Binding

	// Manual refresh
	Refresh key.Binding

	// Actions
	New     key.Binding
	Submit  key.Binding
	Approve key.Binding
	Reject  key.Binding
	Logout  key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Dashboard: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "dashboard"),
		),
		Clan: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "clan"),
		),
		Mural: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "mural"),
		),
		Shop: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "shop"),
		),
		Ranking: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "ranking"),
		),
		Profile: key.NewBinding(
			key.WithKeys("6"),
			key.WithHelp("6", "profile"),
		),
		Reports: key.NewBinding(
			key.WithKeys("7"),
			key.WithHelp("7", "reports"),
		),
		Bell: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "notifications"),
		),
		MarkAllRead: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mark all read"),
		),
		ClearAll: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "clear all"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new"),
		),
		Submit: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "submit mission"),
		),
		Approve: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "approve"),
		),
		Reject: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "reject"),
		),
		Logout: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "logout"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Select, k.Back,
		k.Bell, k.Quit, k.Help,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back, k.Quit},
		{k.Dashboard, k.Clan, k.Mural, k.Shop, k.Ranking, k.Profile, k.Reports},
		{k.Bell, k.MarkAllRead, k.ClearAll, k.Refresh},
		{k.New, k.Submit, k.Approve, k.Reject, k.Logout},
	}
}
