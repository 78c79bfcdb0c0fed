package api

import (
	"context"
	"fmt"

	"github.com/schoolquest/tui/internal/model"
)

// SchoolOverview fetches the school engagement summary. Managers and
// admins only; the server answers 403 for everyone else.
func (c *Client) SchoolOverview(ctx context.Context) (*model.SchoolOverview, error) {
	var overview model.SchoolOverview
	if err := c.Get(ctx, "/analytics/school/overview", &overview); err != nil {
		return nil, fmt.Errorf("fetching school overview: %w", err)
	}
	return &overview, nil
}

// ActivityTimeline fetches the daily count of validated missions over
// the last N days.
func (c *Client) ActivityTimeline(ctx context.Context, days int) ([]model.ActivityPoint, error) {
	var points []model.ActivityPoint
	path := fmt.Sprintf("/analytics/school/activity-timeline?days=%d", days)
	if err := c.Get(ctx, path, &points); err != nil {
		return nil, fmt.Errorf("fetching activity timeline: %w", err)
	}
	return points, nil
}

// CategoryDistribution fetches how the school's missions spread
// across categories.
func (c *Client) CategoryDistribution(ctx context.Context) ([]model.CategoryCount, error) {
	var counts []model.CategoryCount
	if err := c.Get(ctx, "/analytics/school/category-distribution", &counts); err != nil {
		return nil, fmt.Errorf("fetching category distribution: %w", err)
	}
	return counts, nil
}
