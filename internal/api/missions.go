package api

import (
	"context"
	"fmt"

	"github.com/schoolquest/tui/internal/model"
)

// ReceivedMissions fetches the missions assigned to the current student.
func (c *Client) ReceivedMissions(ctx context.Context) ([]model.AssignedMission, error) {
	var missions []model.AssignedMission
	if err := c.Get(ctx, "/missoes/recebidas", &missions); err != nil {
		return nil, fmt.Errorf("fetching received missions: %w", err)
	}
	return missions, nil
}

// CompleteMission submits an assigned mission for validation.
func (c *Client) CompleteMission(ctx context.Context, missionID int) error {
	path := fmt.Sprintf("/missoes/%d/completar", missionID)
	if err := c.Post(ctx, path, nil, nil); err != nil {
		return fmt.Errorf("completing mission %d: %w", missionID, err)
	}
	return nil
}

// PendingValidations fetches submissions awaiting the professor's review.
func (c *Client) PendingValidations(ctx context.Context) ([]model.AssignedMission, error) {
	var missions []model.AssignedMission
	if err := c.Get(ctx, "/missoes/pendentes", &missions); err != nil {
		return nil, fmt.Errorf("fetching pending validations: %w", err)
	}
	return missions, nil
}

// ValidateSubmission approves or rejects a student's mission submission.
func (c *Client) ValidateSubmission(ctx context.Context, submissionID int, approve bool) error {
	path := fmt.Sprintf("/missoes/validar/%d", submissionID)
	body := map[string]bool{"aprovar": approve}
	if err := c.Post(ctx, path, body, nil); err != nil {
		return fmt.Errorf("validating submission %d: %w", submissionID, err)
	}
	return nil
}

// CreateMission creates a new mission. Staff only.
func (c *Client) CreateMission(ctx context.Context, mission model.MissionCreate) (*model.Mission, error) {
	var created model.Mission
	if err := c.Post(ctx, "/missoes/", mission, &created); err != nil {
		return nil, fmt.Errorf("creating mission: %w", err)
	}
	return &created, nil
}
