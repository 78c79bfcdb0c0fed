package api

import (
	"context"
	"fmt"

	"github.com/schoolquest/tui/internal/model"
)

// MyClan fetches the clan the current user belongs to, or nil when the
// user has no clan.
func (c *Client) MyClan(ctx context.Context) (*model.Clan, error) {
	var clan model.Clan
	if err := c.Get(ctx, "/clans/me", &clan); err != nil {
		return nil, fmt.Errorf("fetching my clan: %w", err)
	}
	if clan.ID == 0 {
		return nil, nil
	}
	return &clan, nil
}

// Clans lists the clans in the user's school.
func (c *Client) Clans(ctx context.Context) ([]model.Clan, error) {
	var clans []model.Clan
	if err := c.Get(ctx, "/clans/", &clans); err != nil {
		return nil, fmt.Errorf("fetching clans: %w", err)
	}
	return clans, nil
}

// CreateClan founds a new clan led by the current user.
func (c *Client) CreateClan(ctx context.Context, name, description string) (*model.Clan, error) {
	body := map[string]string{"nome": name, "descricao": description}
	var clan model.Clan
	if err := c.Post(ctx, "/clans/", body, &clan); err != nil {
		return nil, fmt.Errorf("creating clan: %w", err)
	}
	return &clan, nil
}

// ClanMembers lists the members of a clan.
func (c *Client) ClanMembers(ctx context.Context, clanID int) ([]model.ClanMember, error) {
	var members []model.ClanMember
	path := fmt.Sprintf("/clans/%d/members", clanID)
	if err := c.Get(ctx, path, &members); err != nil {
		return nil, fmt.Errorf("fetching members of clan %d: %w", clanID, err)
	}
	return members, nil
}

// InviteToClan invites a user to the current user's clan.
func (c *Client) InviteToClan(ctx context.Context, userID int) error {
	body := map[string]int{"user_id": userID}
	if err := c.Post(ctx, "/clans/invite", body, nil); err != nil {
		return fmt.Errorf("inviting user %d: %w", userID, err)
	}
	return nil
}

// MyInvites lists the current user's pending clan invitations.
func (c *Client) MyInvites(ctx context.Context) ([]model.ClanInvite, error) {
	var invites []model.ClanInvite
	if err := c.Get(ctx, "/clans/invites/my", &invites); err != nil {
		return nil, fmt.Errorf("fetching clan invites: %w", err)
	}
	return invites, nil
}

// AcceptInvite accepts a pending clan invitation.
func (c *Client) AcceptInvite(ctx context.Context, inviteID int) error {
	path := fmt.Sprintf("/clans/invites/%d/accept", inviteID)
	if err := c.Post(ctx, path, nil, nil); err != nil {
		return fmt.Errorf("accepting invite %d: %w", inviteID, err)
	}
	return nil
}

// LeaveClan removes the current user from their clan.
func (c *Client) LeaveClan(ctx context.Context) error {
	if err := c.Post(ctx, "/clans/leave", nil, nil); err != nil {
		return fmt.Errorf("leaving clan: %w", err)
	}
	return nil
}
