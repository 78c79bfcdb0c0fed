package model

import "time"

// Clan is a student-formed group with a leader, members, and a chat room.
type Clan struct {
	ID          int       `json:"id"`
	Name        string    `json:"nome"`
	Description string    `json:"descricao,omitempty"`
	LeaderID    int       `json:"lider_id"`
	SchoolID    int       `json:"escola_id"`
	CreatedAt   time.Time `json:"criado_em"`
}

// ClanMember is one member row as returned by GET /clans/{id}/members.
type ClanMember struct {
	ID        int    `json:"id"`
	UserID    int    `json:"user_id"`
	UserName  string `json:"user_nome"`
	Role      string `json:"papel"`
	AvatarURL string `json:"user_avatar,omitempty"`
}

// ClanInvite is a pending invitation to join a clan.
type ClanInvite struct {
	ID       int    `json:"id"`
	ClanID   int    `json:"clan_id"`
	ClanName string `json:"clan_nome,omitempty"`
	FromName string `json:"from_nome,omitempty"`
}

// ChatMessage is one message in a clan chat room.
//
// Messages sent by this client are appended locally before the server
// echoes them back over the realtime channel, so consumers must merge
// by ID (at most once per ID).
type ChatMessage struct {
	ID        int       `json:"id"`
	ClanID    int       `json:"clan_id"`
	UserID    int       `json:"user_id"`
	UserName  string    `json:"user_name"`
	AvatarURL string    `json:"user_avatar,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	Edited    bool      `json:"edited"`
}
