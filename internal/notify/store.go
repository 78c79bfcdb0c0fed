package notify

import (
	"sync"

	"github.com/schoolquest/tui/internal/model"
)

// Store holds the session's notifications in memory, newest first.
// It is created empty on every connection and never persisted; a
// reconnect after a drop starts from an empty list.
//
// The read flag only ever transitions false to true. Entries are never
// removed individually, only bulk-cleared.
type Store struct {
	mu    sync.RWMutex
	items []model.Notification
}

// NewStore creates an empty notification store.
func NewStore() *Store {
	return &Store{}
}

// Prepend inserts a notification at the head of the list. No
// de-duplication is performed; callers that can see the same event
// twice must use PrependIfAbsent.
func (s *Store) Prepend(n model.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]model.Notification{n}, s.items...)
}

// PrependIfAbsent inserts the notification unless an entry with the
// same ID already exists. It reports whether the insert happened.
// This is the at-most-once-per-id merge rule used for events that
// arrive both from a local optimistic append and the realtime echo.
func (s *Store) PrependIfAbsent(n model.Notification) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == n.ID {
			return false
		}
	}
	s.items = append([]model.Notification{n}, s.items...)
	return true
}

// MarkRead sets the read flag on the matching entry. Absent IDs are a
// no-op.
func (s *Store) MarkRead(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Read = true
			return
		}
	}
}

// MarkAllRead sets the read flag on every entry.
func (s *Store) MarkAllRead() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		s.items[i].Read = true
	}
}

// Clear empties the store.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

// All returns a copy of the list, newest first.
func (s *Store) All() []model.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Notification, len(s.items))
	copy(out, s.items)
	return out
}

// Unread returns a copy of the unread entries, newest first.
func (s *Store) Unread() []model.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Notification
	for _, n := range s.items {
		if !n.Read {
			out = append(out, n)
		}
	}
	return out
}

// UnreadCount is derived, never stored: the number of entries with
// the read flag still false.
func (s *Store) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, n := range s.items {
		if !n.Read {
			count++
		}
	}
	return count
}

// Len returns the total number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
