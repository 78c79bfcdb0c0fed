package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolquest/tui/internal/model"
	"github.com/schoolquest/tui/tests/testutil"
)

func TestCacheMissionsRoundtrip(t *testing.T) {
	cache := testutil.NewTestCache(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	responded := base.Add(2 * time.Hour)

	missions := []model.AssignedMission{
		{
			ID: 1, MissionID: 10, StudentID: 3,
			Status:     model.MissionStatusPending,
			AssignedAt: base,
			Mission: &model.Mission{
				ID: 10, Title: "Read chapter 3", XP: 20, Coins: 5, Category: "estudo",
			},
		},
		{
			ID: 2, MissionID: 11, StudentID: 3,
			Status:      model.MissionStatusApproved,
			AssignedAt:  base.Add(time.Hour),
			RespondedAt: &responded,
			Mission: &model.Mission{
				ID: 11, Title: "Clean the lab", XP: 50, Coins: 10, Category: "geral",
			},
		},
	}

	require.NoError(t, cache.UpsertMissions(ctx, missions))

	got, err := cache.GetMissions(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Newest assignment first.
	assert.Equal(t, 2, got[0].ID)
	assert.Equal(t, "Clean the lab", got[0].Mission.Title)
	require.NotNil(t, got[0].RespondedAt)
	assert.True(t, got[0].RespondedAt.Equal(responded))

	assert.Equal(t, 1, got[1].ID)
	assert.Nil(t, got[1].RespondedAt)
	assert.Equal(t, 20, got[1].Mission.XP)
}

func TestCacheMissionsUpsertReplacesStatus(t *testing.T) {
	cache := testutil.NewTestCache(t)
	ctx := context.Background()

	assigned := model.AssignedMission{
		ID: 1, MissionID: 10, StudentID: 3,
		Status:     model.MissionStatusPending,
		AssignedAt: time.Now().UTC(),
		Mission:    &model.Mission{ID: 10, Title: "Read chapter 3"},
	}
	require.NoError(t, cache.UpsertMissions(ctx, []model.AssignedMission{assigned}))

	assigned.Status = model.MissionStatusSubmitted
	require.NoError(t, cache.UpsertMissions(ctx, []model.AssignedMission{assigned}))

	got, err := cache.GetMissions(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, model.MissionStatusSubmitted, got[0].Status)
}

func TestCacheMessagesChronologicalWithLimit(t *testing.T) {
	cache := testutil.NewTestCache(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	var messages []model.ChatMessage
	for i := 1; i <= 5; i++ {
		messages = append(messages, model.ChatMessage{
			ID: i, ClanID: 7, UserID: i, UserName: "user",
			Message:   "msg",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	// A message from another clan must not leak in.
	messages = append(messages, model.ChatMessage{
		ID: 99, ClanID: 8, UserID: 1, UserName: "other",
		Message: "elsewhere", CreatedAt: base,
	})

	require.NoError(t, cache.UpsertMessages(ctx, messages))

	got, err := cache.GetMessages(ctx, 7, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// The 3 most recent, oldest of those first.
	assert.Equal(t, 3, got[0].ID)
	assert.Equal(t, 4, got[1].ID)
	assert.Equal(t, 5, got[2].ID)
}

func TestCacheRankingReplaceIsWholesale(t *testing.T) {
	cache := testutil.NewTestCache(t)
	ctx := context.Background()

	first := []model.RankingEntry{
		{Name: "Ana", Level: 5, XP: 450, Grade: "7B"},
		{Name: "Bruno", Level: 4, XP: 390, Grade: "7A"},
	}
	require.NoError(t, cache.ReplaceRanking(ctx, first))

	second := []model.RankingEntry{
		{Name: "Carla", Level: 9, XP: 880, Grade: "8C"},
	}
	require.NoError(t, cache.ReplaceRanking(ctx, second))

	got, err := cache.GetRanking(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Carla", got[0].Name)
	assert.Equal(t, 880, got[0].XP)
}
