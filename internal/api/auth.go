package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/schoolquest/tui/internal/model"
)

// Token is the response of POST /auth/token.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges credentials for a bearer token. The endpoint expects
// an OAuth2 password form with the email in the username field.
func (c *Client) Login(ctx context.Context, email, password string) (*Token, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var tok Token
	if err := c.PostForm(ctx, "/auth/token", form, &tok); err != nil {
		return nil, fmt.Errorf("logging in: %w", err)
	}
	return &tok, nil
}

// Me fetches the authenticated user's account.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.Get(ctx, "/users/me", &user); err != nil {
		return nil, fmt.Errorf("fetching current user: %w", err)
	}
	return &user, nil
}

// Ranking fetches the school XP leaderboard, limited to the given
// number of rows.
func (c *Client) Ranking(ctx context.Context, limit int) ([]model.RankingEntry, error) {
	var entries []model.RankingEntry
	path := fmt.Sprintf("/ranking?limit=%d", limit)
	if err := c.Get(ctx, path, &entries); err != nil {
		return nil, fmt.Errorf("fetching ranking: %w", err)
	}
	return entries, nil
}
