package services

import (
	"context"
	"testing"

	"fitcats/models"
	"fitcats/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedParticipant(t *testing.T, st store.Store, id, name string, leagueID string, steps int) {
	t.Helper()
	user := models.User{
		ID:          id,
		Username:    name,
		CurrentRank: models.Rank{Name: "Cat", ImageName: "rank1"},
	}
	if steps > 0 {
		user.LeagueSteps = []models.LeagueSteps{{League: leagueID, Steps: steps}}
	}
	seedUser(t, st, user)
}

func TestLeaderboardOrderingAndTieBreak(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewLeaderboardService(st)

	league := &models.League{ID: "lg1", Participants: []string{"userC", "userA", "userB"}}
	seedParticipant(t, st, "userA", "ana", "lg1", 50)
	seedParticipant(t, st, "userB", "bo", "lg1", 200)
	seedParticipant(t, st, "userC", "cleo", "lg1", 200)

	for i := 0; i < 20; i++ {
		entries := svc.ComputeLeaderboard(context.Background(), league)
		require.Len(t, entries, 3)
		// Ties resolve by user id ascending, independent of fetch order.
		assert.Equal(t, "userB", entries[0].UserID)
		assert.Equal(t, "userC", entries[1].UserID)
		assert.Equal(t, "userA", entries[2].UserID)
	}
}

func TestLeaderboardDefaultsMissingLeagueStepsToZero(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewLeaderboardService(st)

	league := &models.League{ID: "lg1", Participants: []string{"walker", "joiner"}}
	seedParticipant(t, st, "walker", "ana", "lg1", 120)
	// joiner accepted the invite but has no league-scoped steps yet.
	seedParticipant(t, st, "joiner", "bo", "lg1", 0)

	entries := svc.ComputeLeaderboard(context.Background(), league)
	require.Len(t, entries, 2)
	assert.Equal(t, "walker", entries[0].UserID)
	assert.Equal(t, 0, entries[1].Steps)
}

func TestLeaderboardOmitsFailedParticipantFetches(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewLeaderboardService(st)

	league := &models.League{ID: "lg1", Participants: []string{"present", "vanished"}}
	seedParticipant(t, st, "present", "ana", "lg1", 10)

	entries := svc.ComputeLeaderboard(context.Background(), league)
	require.Len(t, entries, 1, "a failed fetch is omitted, not fatal")
	assert.Equal(t, "present", entries[0].UserID)
}

func TestLeaderboardCarriesRankImage(t *testing.T) {
	st := store.NewMemoryStore()
	svc := NewLeaderboardService(st)

	league := &models.League{ID: "lg1", Participants: []string{"userA"}}
	seedParticipant(t, st, "userA", "ana", "lg1", 10)

	entries := svc.ComputeLeaderboard(context.Background(), league)
	require.Len(t, entries, 1)
	assert.Equal(t, "rank1", entries[0].RankImage)
	assert.Equal(t, "ana", entries[0].Name)
}
