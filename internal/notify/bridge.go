package notify

import (
	"log"

	"github.com/gen2brain/beeep"

	"github.com/schoolquest/tui/internal/model"
)

// Bridge mirrors incoming notifications to the OS notification surface
// when the user has granted permission. Mirroring is fire-and-forget:
// it never blocks the pipeline and failures only reach the log.
type Bridge struct {
	permission model.DesktopPermission
	logger     *log.Logger
}

// NewBridge creates a bridge with the persisted permission state.
func NewBridge(permission model.DesktopPermission, logger *log.Logger) *Bridge {
	if logger == nil {
		logger = log.Default()
	}
	if permission == "" {
		permission = model.PermissionDefault
	}
	return &Bridge{permission: permission, logger: logger}
}

// Permission returns the current permission state.
func (b *Bridge) Permission() model.DesktopPermission {
	return b.permission
}

// ShouldPrompt reports whether the one-shot opportunistic permission
// request should still be shown. It is true only while the user has
// never answered.
func (b *Bridge) ShouldPrompt() bool {
	return b.permission == model.PermissionDefault
}

// Decide records the user's answer to the permission prompt. Once
// granted or denied the state never returns to default, so the user is
// never re-prompted.
func (b *Bridge) Decide(granted bool) {
	if b.permission != model.PermissionDefault {
		return
	}
	if granted {
		b.permission = model.PermissionGranted
	} else {
		b.permission = model.PermissionDenied
	}
}

// Mirror forwards the notification's title and message to the OS
// layer when permission was granted. The in-app store is never
// affected by the outcome.
func (b *Bridge) Mirror(n model.Notification) {
	if b.permission != model.PermissionGranted {
		return
	}

	go func() {
		if err := beeep.Notify(n.Title, n.Message, ""); err != nil {
			b.logger.Printf("notify: desktop mirror failed: %v", err)
		}
	}()
}
