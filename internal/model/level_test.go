package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelInfoForLevels(t *testing.T) {
	tests := []struct {
		xp        int
		wantLevel int
		wantRank  string
	}{
		{xp: 0, wantLevel: 1, wantRank: "Novato"},
		{xp: 99, wantLevel: 1, wantRank: "Novato"},
		{xp: 100, wantLevel: 2, wantRank: "Novato"},
		{xp: 399, wantLevel: 4, wantRank: "Novato"},
		{xp: 400, wantLevel: 5, wantRank: "Aprendiz"},
		{xp: 899, wantLevel: 9, wantRank: "Aprendiz"},
		{xp: 900, wantLevel: 10, wantRank: "Explorador"},
		{xp: 1900, wantLevel: 20, wantRank: "Mestre"},
		{xp: 4900, wantLevel: 50, wantRank: "Lenda"},
		{xp: 123456, wantLevel: 1235, wantRank: "Lenda"},
	}

	for _, tt := range tests {
		info := LevelInfoFor(tt.xp)
		assert.Equal(t, tt.wantLevel, info.Level, "xp=%d", tt.xp)
		assert.Equal(t, tt.wantRank, info.RankTitle, "xp=%d", tt.xp)
	}
}

func TestLevelInfoForProgress(t *testing.T) {
	info := LevelInfoFor(450)
	assert.Equal(t, 5, info.Level)
	assert.Equal(t, 50, info.XPIntoLevel)
	assert.Equal(t, 50, info.ProgressPercent)
	assert.Equal(t, 500, info.XPForNextLevel)
}

func TestLevelInfoForClampsNegativeXP(t *testing.T) {
	info := LevelInfoFor(-10)
	assert.Equal(t, 1, info.Level)
	assert.Equal(t, 0, info.XPIntoLevel)
	assert.Equal(t, 0, info.ProgressPercent)
}
