package api

import (
	"context"
	"fmt"

	"github.com/schoolquest/tui/internal/model"
)

// ClanMessages fetches a page of chat history for a clan. The server
// returns messages in chronological order.
func (c *Client) ClanMessages(ctx context.Context, clanID, skip, limit int) ([]model.ChatMessage, error) {
	var messages []model.ChatMessage
	path := fmt.Sprintf("/chat/clan/%d/messages?skip=%d&limit=%d", clanID, skip, limit)
	if err := c.Get(ctx, path, &messages); err != nil {
		return nil, fmt.Errorf("fetching messages for clan %d: %w", clanID, err)
	}
	return messages, nil
}

// SendClanMessage posts a message to the clan chat. The server echoes
// it to all members (sender included) over the realtime channel, so
// the caller must merge the local append and the echo by message ID.
func (c *Client) SendClanMessage(ctx context.Context, clanID int, text string) (*model.ChatMessage, error) {
	body := map[string]string{"message": text}
	var msg model.ChatMessage
	path := fmt.Sprintf("/chat/clan/%d/messages", clanID)
	if err := c.Post(ctx, path, body, &msg); err != nil {
		return nil, fmt.Errorf("sending message to clan %d: %w", clanID, err)
	}
	return &msg, nil
}
