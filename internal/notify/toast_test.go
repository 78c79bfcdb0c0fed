package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolquest/tui/internal/model"
)

func unreadList(ids ...string) []model.Notification {
	out := make([]model.Notification, len(ids))
	for i, id := range ids {
		out[i] = model.Notification{ID: id, Title: id}
	}
	return out
}

func TestToasterShowsAtMostThree(t *testing.T) {
	tr := NewToaster()
	now := time.Now()

	tr.Refresh(unreadList("a", "b", "c", "d", "e"), now)

	visible := tr.Visible(now)
	require.Len(t, visible, 3)
	assert.Equal(t, "a", visible[0].ID)
	assert.Equal(t, "c", visible[2].ID)
}

func TestToasterExpiresAfterTTL(t *testing.T) {
	tr := NewToaster()
	now := time.Now()

	tr.Refresh(unreadList("a"), now)

	assert.Len(t, tr.Visible(now.Add(4*time.Second)), 1)
	assert.Empty(t, tr.Visible(now.Add(5*time.Second)))
	assert.Empty(t, tr.Visible(now.Add(time.Minute)))
}

func TestToasterDeadlineResetsOnlyWhenViewChanges(t *testing.T) {
	tr := NewToaster()
	now := time.Now()

	tr.Refresh(unreadList("a", "b"), now)

	// Refreshing with the same derived view must not extend the deadline.
	tr.Refresh(unreadList("a", "b"), now.Add(4*time.Second))
	assert.Empty(t, tr.Visible(now.Add(6*time.Second)))

	// A new entry changes the view and restarts the countdown.
	tr.Refresh(unreadList("c", "a", "b"), now.Add(4*time.Second))
	visible := tr.Visible(now.Add(8*time.Second))
	require.Len(t, visible, 3)
	assert.Equal(t, "c", visible[0].ID)
}

func TestToasterDismissIsVisualOnly(t *testing.T) {
	tr := NewToaster()
	now := time.Now()

	unread := unreadList("a", "b")
	tr.Dismiss("nothing") // no-op on empty stack

	tr.Refresh(unread, now)
	tr.Dismiss("a")

	visible := tr.Visible(now)
	require.Len(t, visible, 1)
	assert.Equal(t, "b", visible[0].ID)

	// The source list is untouched; dismissal never marks anything read.
	assert.False(t, unread[0].Read)
}
