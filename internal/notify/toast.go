package notify

import (
	"time"

	"github.com/schoolquest/tui/internal/model"
)

// toastLimit is how many unread notifications the toast stack shows.
const toastLimit = 3

// toastTTL is how long the toast stack stays up after it last changed.
const toastTTL = 5 * time.Second

// Toaster derives the transient toast view from the unread entries of
// the store: the most recent unread notifications, auto-dismissed a
// fixed time after the view last changed. Dismissal is purely visual
// and never marks entries read.
type Toaster struct {
	visible  []model.Notification
	deadline time.Time
}

// NewToaster creates an empty toast view.
func NewToaster() *Toaster {
	return &Toaster{}
}

// Refresh recomputes the visible stack from the store's unread
// entries (newest first). The dismiss deadline resets only when the
// derived view actually changes.
func (t *Toaster) Refresh(unread []model.Notification, now time.Time) {
	next := unread
	if len(next) > toastLimit {
		next = next[:toastLimit]
	}

	if sameIDs(t.visible, next) {
		return
	}

	t.visible = append([]model.Notification(nil), next...)
	t.deadline = now.Add(toastTTL)
}

// Visible returns the toasts to render at the given instant. Past the
// deadline the view is empty regardless of the store's contents.
func (t *Toaster) Visible(now time.Time) []model.Notification {
	if len(t.visible) == 0 || !now.Before(t.deadline) {
		return nil
	}
	out := make([]model.Notification, len(t.visible))
	copy(out, t.visible)
	return out
}

// Dismiss removes a single toast from the visible stack.
func (t *Toaster) Dismiss(id string) {
	kept := t.visible[:0]
	for _, n := range t.visible {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	t.visible = kept
}

// sameIDs reports whether two notification slices hold the same IDs in
// the same order.
func sameIDs(a, b []model.Notification) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			return false
		}
	}
	return true
}
