package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotificationTargets(t *testing.T) {
	tests := []struct {
		typ  NotificationType
		want Screen
	}{
		{NotifMissionAssigned, ScreenDashboard},
		{NotifMissionValidated, ScreenDashboard},
		{NotifMissionRejected, ScreenDashboard},
		{NotifClanInvite, ScreenClan},
		{NotifClanMessage, ScreenClan},
		{NotifNewAchievement, ScreenProfile},
		{NotifSystemAnnouncement, ScreenNone},
		{NotifDailyChallenge, ScreenNone},
		{NotificationType("something_new"), ScreenNone},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.typ.Target(), "type %s", tt.typ)
	}
}

func TestIsStaffByRole(t *testing.T) {
	assert.False(t, User{Role: RoleStudent}.IsStaff())
	assert.True(t, User{Role: RoleProfessor}.IsStaff())
	assert.True(t, User{Role: RoleManager}.IsStaff())
	assert.True(t, User{Role: RoleAdmin}.IsStaff())
}

func TestCanViewReportsByRole(t *testing.T) {
	assert.False(t, User{Role: RoleStudent}.CanViewReports())
	assert.False(t, User{Role: RoleProfessor}.CanViewReports())
	assert.True(t, User{Role: RoleManager}.CanViewReports())
	assert.True(t, User{Role: RoleAdmin}.CanViewReports())
}
