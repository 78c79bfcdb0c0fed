package realtime

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/schoolquest/tui/internal/model"
)

// frame is the wire shape of an inbound realtime message.
type frame struct {
	Type    string         `json:"type"`
	Title   string         `json:"title"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

// Decode converts one inbound text frame into at most one
// notification. Heartbeat acknowledgements decode to (nil, nil).
// The server-supplied type is copied through verbatim; unknown types
// are kept and fall back to a default icon at render time.
func Decode(raw []byte) (*model.Notification, error) {
	var f frame
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parsing frame: %w", err)
	}

	if model.NotificationType(f.Type) == model.NotifPong {
		return nil, nil
	}

	return &model.Notification{
		ID:        uuid.New().String(),
		Type:      model.NotificationType(f.Type),
		Title:     f.Title,
		Message:   f.Message,
		Data:      f.Data,
		Timestamp: time.Now(),
		Read:      false,
	}, nil
}
