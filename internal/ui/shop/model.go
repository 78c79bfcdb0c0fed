package shop

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/schoolquest/tui/internal/api"
	"github.com/schoolquest/tui/internal/keys"
	"github.com/schoolquest/tui/internal/model"
	"github.com/schoolquest/tui/internal/theme"
)

// LoadedMsg carries the shop catalog and the user's inventory.
type LoadedMsg struct {
	Items     []model.ShopItem
	Inventory []model.InventoryItem
	Err       error
}

// PurchaseMsg reports the outcome of a purchase. The app refreshes the
// user's coin balance when Err is nil.
type PurchaseMsg struct {
	Err error
}

const loadTimeout = 30 * time.Second

// Model is the reward shop: the redeemable catalog beside the user's
// inventory.
type Model struct {
	client    *api.Client
	keys      *keys.KeyMap
	items     []model.ShopItem
	inventory []model.InventoryItem
	coins     int
	cursor    int
	loading   bool
	lastErr   error
	width     int
	height    int
}

// New creates a shop screen model.
func New(client *api.Client, k *keys.KeyMap, coins, width, height int) Model {
	return Model{
		client:  client,
		keys:    k,
		coins:   coins,
		loading: true,
		width:   width,
		height:  height,
	}
}

// Init returns a command that loads the catalog and inventory.
func (m Model) Init() tea.Cmd {
	return m.Load()
}

// Load fetches the catalog and the user's inventory.
func (m Model) Load() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		items, err := client.ShopItems(ctx)
		if err != nil {
			return LoadedMsg{Err: err}
		}

		inventory, err := client.Inventory(ctx)
		return LoadedMsg{Items: items, Inventory: inventory, Err: err}
	}
}

// SetCoins updates the displayed coin balance.
func (m *Model) SetCoins(coins int) {
	m.coins = coins
}

// Update handles messages for the shop screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		m.loading = false
		m.lastErr = msg.Err
		if msg.Err == nil {
			m.items = msg.Items
			m.inventory = msg.Inventory
			if m.cursor >= len(m.items) {
				m.cursor = 0
			}
		}
		return m, nil

	case PurchaseMsg:
		if msg.Err != nil {
			m.lastErr = msg.Err
			return m, nil
		}
		m.lastErr = nil
		return m, m.Load()

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "enter":
			if m.cursor < len(m.items) {
				item := m.items[m.cursor]
				if item.Price > m.coins {
					m.lastErr = fmt.Errorf("not enough coins for %s", item.Name)
					return m, nil
				}
				return m, m.buy(item.ID)
			}
		}
	}

	return m, nil
}

func (m Model) buy(itemID int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		return PurchaseMsg{Err: client.BuyItem(ctx, itemID)}
	}
}

// View renders the shop screen.
func (m Model) View() string {
	if m.loading {
		return theme.DimmedStyle.Render("Loading shop…")
	}

	catalog := m.renderCatalog()
	owned := m.renderInventory()

	body := lipgloss.JoinHorizontal(lipgloss.Top, catalog, owned)

	if m.lastErr != nil {
		errLine := lipgloss.NewStyle().
			Foreground(theme.ColorRed).
			Render(m.lastErr.Error())
		body = lipgloss.JoinVertical(lipgloss.Left, body, errLine)
	}

	return body
}

func (m Model) renderCatalog() string {
	var b strings.Builder
	b.WriteString(theme.HeaderStyle.Render(fmt.Sprintf("Shop — 🪙 %d", m.coins)))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(theme.DimmedStyle.Render("The shop is empty."))
	}

	for i, item := range m.items {
		line := fmt.Sprintf(
			"%s  %s  %s",
			theme.RarityStyle(item.Rarity).Render(item.Name),
			theme.DimmedStyle.Render(item.Description),
			fmt.Sprintf("🪙 %d", item.Price),
		)
		if item.Price > m.coins {
			line = theme.DimmedStyle.Render(line)
		}

		if i == m.cursor {
			b.WriteString(theme.SelectedItemStyle.Render(line))
		} else {
			b.WriteString(theme.ListItemStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.HelpStyle.Render("enter buy"))

	width := m.width * 2 / 3
	if width < 40 {
		width = 40
	}
	return theme.PanelStyle.Width(width).Height(m.height - 4).Render(b.String())
}

func (m Model) renderInventory() string {
	var b strings.Builder
	b.WriteString(theme.HeaderStyle.Render("Inventory"))
	b.WriteString("\n\n")

	if len(m.inventory) == 0 {
		b.WriteString(theme.DimmedStyle.Render("Nothing owned yet."))
	}

	for _, owned := range m.inventory {
		line := theme.RarityStyle(owned.Item.Rarity).Render(owned.Item.Name)
		if owned.Equipped {
			line += " ✔"
		}
		b.WriteString(theme.ListItemStyle.Render(line))
		b.WriteString("\n")
	}

	width := m.width - m.width*2/3 - 6
	if width < 20 {
		width = 20
	}
	return theme.PanelStyle.Width(width).Height(m.height - 4).Render(b.String())
}

// SetSize updates the screen dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
