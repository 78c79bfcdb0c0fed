package model

import "time"

// NotificationType tags a server-pushed notification. The set is owned
// by the server; unknown values are stored as-is and rendered with a
// fallback icon.
type NotificationType string

const (
	NotifMissionAssigned    NotificationType = "mission_assigned"
	NotifMissionValidated   NotificationType = "mission_validated"
	NotifMissionRejected    NotificationType = "mission_rejected"
	NotifClanInvite         NotificationType = "clan_invite"
	NotifClanMessage        NotificationType = "clan_message"
	NotifNewAchievement     NotificationType = "new_achievement"
	NotifSystemAnnouncement NotificationType = "system_announcement"
	NotifDailyChallenge     NotificationType = "daily_challenge"
	NotifEventStarted       NotificationType = "event_started"
	NotifPowerupExpired     NotificationType = "powerup_expired"

	// NotifPong is the reserved heartbeat acknowledgement tag. Frames
	// carrying it are dropped before they reach the notification store.
	NotifPong NotificationType = "pong"
)

// Notification is a single server-pushed event surfaced to the user.
// It exists only for the lifetime of the session; nothing about it is
// persisted.
type Notification struct {
	// ID is a locally generated identifier assigned at receipt time.
	ID string `json:"id"`

	// Type drives the icon and the navigation target on click.
	Type NotificationType `json:"type"`

	// Title is the short headline supplied by the server.
	Title string `json:"title"`

	// Message is the body text supplied by the server.
	Message string `json:"message"`

	// Data carries type-specific context (clan id, sender, ...) copied
	// through verbatim from the server payload.
	Data map[string]any `json:"data,omitempty"`

	// Timestamp is the client-side receipt time, not the server send time.
	Timestamp time.Time `json:"timestamp"`

	// Read is flipped true by user interaction and never reverts.
	Read bool `json:"read"`
}

// Screen identifies a navigation target within the client.
type Screen string

const (
	ScreenNone      Screen = ""
	ScreenDashboard Screen = "dashboard"
	ScreenClan      Screen = "clan"
	ScreenProfile   Screen = "profile"
)

// Target returns the screen the client should navigate to when the
// notification is selected. Unknown types navigate nowhere.
func (t NotificationType) Target() Screen {
	switch t {
	case NotifMissionAssigned, NotifMissionValidated, NotifMissionRejected:
		return ScreenDashboard
	case NotifClanInvite, NotifClanMessage:
		return ScreenClan
	case NotifNewAchievement:
		return ScreenProfile
	default:
		return ScreenNone
	}
}

// Icon returns the glyph shown next to the notification in the bell
// dropdown and the toast stack.
func (t NotificationType) Icon() string {
	switch t {
	case NotifMissionAssigned:
		return "📋"
	case NotifMissionValidated:
		return "✅"
	case NotifMissionRejected:
		return "❌"
	case NotifClanInvite:
		return "🛡"
	case NotifClanMessage:
		return "💬"
	case NotifNewAchievement:
		return "🏆"
	case NotifSystemAnnouncement:
		return "📢"
	default:
		return "🔔"
	}
}
