package api

import (
	"context"
	"fmt"

	"github.com/schoolquest/tui/internal/model"
)

// ShopItems lists the rewards currently redeemable in the shop.
func (c *Client) ShopItems(ctx context.Context) ([]model.ShopItem, error) {
	var items []model.ShopItem
	if err := c.Get(ctx, "/loja/itens", &items); err != nil {
		return nil, fmt.Errorf("fetching shop items: %w", err)
	}
	return items, nil
}

// BuyItem redeems a shop item with the user's coins.
func (c *Client) BuyItem(ctx context.Context, itemID int) error {
	path := fmt.Sprintf("/loja/comprar/%d", itemID)
	if err := c.Post(ctx, path, nil, nil); err != nil {
		return fmt.Errorf("buying item %d: %w", itemID, err)
	}
	return nil
}

// Inventory lists the items the current user owns.
func (c *Client) Inventory(ctx context.Context) ([]model.InventoryItem, error) {
	var items []model.InventoryItem
	if err := c.Get(ctx, "/users/me/inventory", &items); err != nil {
		return nil, fmt.Errorf("fetching inventory: %w", err)
	}
	return items, nil
}
