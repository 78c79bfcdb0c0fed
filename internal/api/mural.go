package api

import (
	"context"
	"fmt"

	"github.com/schoolquest/tui/internal/model"
)

// MuralPosts fetches the school's social feed, newest first.
func (c *Client) MuralPosts(ctx context.Context) ([]model.MuralPost, error) {
	var posts []model.MuralPost
	if err := c.Get(ctx, "/mural/", &posts); err != nil {
		return nil, fmt.Errorf("fetching mural: %w", err)
	}
	return posts, nil
}

// CreateMuralPost publishes a text post to the school mural.
func (c *Client) CreateMuralPost(ctx context.Context, content string) (*model.MuralPost, error) {
	body := map[string]string{"conteudo": content}
	var post model.MuralPost
	if err := c.Post(ctx, "/mural/", body, &post); err != nil {
		return nil, fmt.Errorf("creating mural post: %w", err)
	}
	return &post, nil
}

// DeleteMuralPost removes a post the user owns (or any post, for staff).
func (c *Client) DeleteMuralPost(ctx context.Context, postID int) error {
	path := fmt.Sprintf("/mural/%d", postID)
	if err := c.Delete(ctx, path); err != nil {
		return fmt.Errorf("deleting mural post %d: %w", postID, err)
	}
	return nil
}
