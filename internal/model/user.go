package model

// Role is the access level assigned to an account by the server.
// The wire values are the Portuguese role names the API uses.
type Role string

const (
	RoleStudent   Role = "aluno"
	RoleProfessor Role = "professor"
	RoleManager   Role = "gestor"
	RoleAdmin     Role = "admin"
)

// User is the authenticated account as returned by GET /users/me.
// JSON tags follow the API's wire names.
type User struct {
	ID         int    `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"nome"`
	Role       Role   `json:"papel"`
	Points     int    `json:"pontos"`
	Coins      int    `json:"moedas"`
	XP         int    `json:"xp"`
	Level      int    `json:"nivel"`
	Streak     int    `json:"streak_count"`
	AvatarURL  string `json:"avatar_url,omitempty"`
	Bio        string `json:"bio,omitempty"`
	Interests  string `json:"interesses,omitempty"`
	SchoolID   int    `json:"escola_id,omitempty"`
	SchoolName string `json:"escola_nome,omitempty"`
	GradeID    int    `json:"serie_id,omitempty"`
	GradeName  string `json:"serie_nome,omitempty"`
}

// IsStaff reports whether the user can create and validate missions.
func (u User) IsStaff() bool {
	return u.Role == RoleProfessor || u.Role == RoleManager || u.Role == RoleAdmin
}

// CanViewReports reports whether the user can open the school
// analytics reports. The server rejects everyone but managers and
// admins.
func (u User) CanViewReports() bool {
	return u.Role == RoleManager || u.Role == RoleAdmin
}

// RankingEntry is one row of the school XP leaderboard.
type RankingEntry struct {
	Name  string `json:"nome"`
	Level int    `json:"nivel"`
	XP    int    `json:"xp"`
	Grade string `json:"serie"`
}
