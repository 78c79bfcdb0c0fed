package model

import "time"

// ShopItem is a reward redeemable with earned coins.
type ShopItem struct {
	ID          int    `json:"id"`
	Name        string `json:"nome"`
	Description string `json:"descricao"`
	Rarity      string `json:"raridade"`
	Kind        string `json:"tipo"`
	ImageURL    string `json:"imagem_url,omitempty"`
	Price       int    `json:"preco_moedas"`
}

// InventoryItem is a shop item owned by the current user.
type InventoryItem struct {
	ID         int       `json:"id"`
	Item       ShopItem  `json:"item"`
	Equipped   bool      `json:"equipado"`
	ObtainedAt time.Time `json:"data_obtencao"`
}
