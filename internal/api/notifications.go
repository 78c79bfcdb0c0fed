package api

import (
	"context"
	"fmt"
)

// VapidPublicKey fetches the server's public key for push subscriptions.
func (c *Client) VapidPublicKey(ctx context.Context) (string, error) {
	var resp struct {
		PublicKey string `json:"publicKey"`
	}
	if err := c.Get(ctx, "/notifications/vapid_public_key", &resp); err != nil {
		return "", fmt.Errorf("fetching vapid public key: %w", err)
	}
	return resp.PublicKey, nil
}

// RegisterDeviceToken subscribes this device for server-side push
// delivery while the client is not running.
func (c *Client) RegisterDeviceToken(ctx context.Context, token string) error {
	body := map[string]string{"token": token}
	if err := c.Post(ctx, "/notifications/subscribe", body, nil); err != nil {
		return fmt.Errorf("registering device token: %w", err)
	}
	return nil
}

// UnregisterDeviceToken removes this device's push subscription.
func (c *Client) UnregisterDeviceToken(ctx context.Context) error {
	if err := c.Delete(ctx, "/notifications/device-token"); err != nil {
		return fmt.Errorf("unregistering device token: %w", err)
	}
	return nil
}

// SendTestNotification asks the server to push a test notification
// back to this user.
func (c *Client) SendTestNotification(ctx context.Context) error {
	if err := c.Post(ctx, "/notifications/send_test", nil, nil); err != nil {
		return fmt.Errorf("sending test notification: %w", err)
	}
	return nil
}
