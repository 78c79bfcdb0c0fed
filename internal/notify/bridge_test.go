package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schoolquest/tui/internal/model"
)

func TestBridgePermissionDefaultsWhenUnset(t *testing.T) {
	b := NewBridge("", nil)
	assert.Equal(t, model.PermissionDefault, b.Permission())
	assert.True(t, b.ShouldPrompt())
}

func TestBridgeDecideIsOneShot(t *testing.T) {
	b := NewBridge(model.PermissionDefault, nil)

	b.Decide(false)
	assert.Equal(t, model.PermissionDenied, b.Permission())
	assert.False(t, b.ShouldPrompt())

	// A later answer must not overturn the recorded decision.
	b.Decide(true)
	assert.Equal(t, model.PermissionDenied, b.Permission())
}

func TestBridgeNeverPromptsAfterPersistedAnswer(t *testing.T) {
	granted := NewBridge(model.PermissionGranted, nil)
	assert.False(t, granted.ShouldPrompt())

	denied := NewBridge(model.PermissionDenied, nil)
	assert.False(t, denied.ShouldPrompt())
	denied.Decide(true)
	assert.Equal(t, model.PermissionDenied, denied.Permission())
}
