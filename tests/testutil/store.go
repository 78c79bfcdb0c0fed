package testutil

import (
	"testing"

	"github.com/schoolquest/tui/internal/store"
)

// NewTestCache creates an in-memory CacheStore with all migrations
// applied. It automatically closes the store when the test completes.
func NewTestCache(t *testing.T) *store.CacheStore {
	t.Helper()

	s, err := store.NewCacheStore(":memory:")
	if err != nil {
		t.Fatalf("creating test cache: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test cache: %v", err)
		}
	})

	return s
}
