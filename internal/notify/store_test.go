package notify

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolquest/tui/internal/model"
)

func notification(id string) model.Notification {
	return model.Notification{
		ID:      id,
		Type:    model.NotifSystemAnnouncement,
		Title:   "title " + id,
		Message: "message " + id,
	}
}

func TestStorePrependKeepsNewestFirst(t *testing.T) {
	s := NewStore()

	for i := 1; i <= 5; i++ {
		s.Prepend(notification(fmt.Sprintf("n%d", i)))
	}

	all := s.All()
	require.Len(t, all, 5)
	for i, n := range all {
		assert.Equal(t, fmt.Sprintf("n%d", 5-i), n.ID)
	}
}

func TestStorePrependIfAbsentMergesByID(t *testing.T) {
	s := NewStore()

	require.True(t, s.PrependIfAbsent(notification("a")))
	require.True(t, s.PrependIfAbsent(notification("b")))
	assert.False(t, s.PrependIfAbsent(notification("a")))

	assert.Equal(t, 2, s.Len())
}

func TestStoreReadFlagNeverReverts(t *testing.T) {
	s := NewStore()
	s.Prepend(notification("a"))
	s.Prepend(notification("b"))

	s.MarkRead("a")

	// Marking again, marking an absent ID, and marking all must never
	// flip a read entry back to unread.
	s.MarkRead("a")
	s.MarkRead("missing")
	s.MarkAllRead()

	for _, n := range s.All() {
		assert.True(t, n.Read, "notification %s should stay read", n.ID)
	}
	assert.Equal(t, 0, s.UnreadCount())
}

func TestStoreUnreadCountIsDerived(t *testing.T) {
	s := NewStore()
	assert.Equal(t, 0, s.UnreadCount())

	for i := 0; i < 12; i++ {
		s.Prepend(notification(fmt.Sprintf("n%d", i)))
	}
	assert.Equal(t, 12, s.UnreadCount())

	s.MarkRead("n3")
	s.MarkRead("n7")
	assert.Equal(t, 10, s.UnreadCount())

	unread := s.Unread()
	require.Len(t, unread, 10)
	for _, n := range unread {
		assert.False(t, n.Read)
	}
}

func TestStoreClearEmptiesEverything(t *testing.T) {
	s := NewStore()
	s.Prepend(notification("a"))
	s.Prepend(notification("b"))

	s.Clear()

	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 0, s.UnreadCount())
	assert.Empty(t, s.All())
}
