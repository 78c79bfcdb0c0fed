package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolquest/tui/internal/model"
)

func TestDecodeNotificationFrame(t *testing.T) {
	raw := []byte(`{
		"type": "mission_assigned",
		"title": "New mission",
		"message": "Read chapter 3",
		"data": {"mission_id": 42}
	}`)

	n, err := Decode(raw)
	require.NoError(t, err)
	require.NotNil(t, n)

	assert.Equal(t, model.NotifMissionAssigned, n.Type)
	assert.Equal(t, "New mission", n.Title)
	assert.Equal(t, "Read chapter 3", n.Message)
	assert.Equal(t, float64(42), n.Data["mission_id"])
	assert.NotEmpty(t, n.ID)
	assert.False(t, n.Timestamp.IsZero())
	assert.False(t, n.Read)
}

func TestDecodeAssignsUniqueIDs(t *testing.T) {
	raw := []byte(`{"type": "system_announcement", "title": "t", "message": "m"}`)

	first, err := Decode(raw)
	require.NoError(t, err)
	second, err := Decode(raw)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestDecodeDropsPong(t *testing.T) {
	n, err := Decode([]byte(`{"type": "pong"}`))
	require.NoError(t, err)
	assert.Nil(t, n)
}

func TestDecodeRejectsMalformedFrame(t *testing.T) {
	n, err := Decode([]byte(`{not json`))
	require.Error(t, err)
	assert.Nil(t, n)
}

func TestDecodeKeepsUnknownTypeVerbatim(t *testing.T) {
	raw := []byte(`{"type": "totally_new_event", "title": "t", "message": "m"}`)

	n, err := Decode(raw)
	require.NoError(t, err)
	require.NotNil(t, n)

	assert.Equal(t, model.NotificationType("totally_new_event"), n.Type)
	assert.Equal(t, model.ScreenNone, n.Type.Target())
	assert.Equal(t, "🔔", n.Type.Icon())
}
