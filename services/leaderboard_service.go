package services

import (
	"context"
	"log"
	"sort"
	"sync"

	"fitcats/db"
	"fitcats/models"
	"fitcats/store"
)

// LeaderboardService projects a league's participants into a ranked standing.
// The result is ephemeral: recomputed per view, never persisted.
type LeaderboardService struct {
	store store.Store
}

func NewLeaderboardService(st store.Store) *LeaderboardService {
	return &LeaderboardService{store: st}
}

// ComputeLeaderboard fetches every participant independently and concurrently,
// then sorts once all fetches have settled. A participant whose fetch fails is
// logged and omitted; it never fails the whole computation. Ordering is
// descending by league-scoped steps with ties broken by user id ascending, so
// the standing is deterministic regardless of fetch completion order.
func (s *LeaderboardService) ComputeLeaderboard(ctx context.Context, league *models.League) []models.LeaderboardEntry {
	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		entries = make([]models.LeaderboardEntry, 0, len(league.Participants))
	)

	for _, participantID := range league.Participants {
		wg.Add(1)
		go func(userID string) {
			defer wg.Done()

			var user models.User
			if err := s.store.Get(ctx, db.UsersCollection, userID, &user); err != nil {
				log.Printf("Leaderboard for league %s: dropping participant %s: %v", league.ID, userID, err)
				return
			}

			entry := models.LeaderboardEntry{
				UserID:    user.ID,
				Name:      user.Username,
				RankImage: user.CurrentRank.ImageName,
				Steps:     user.StepsInLeague(league.ID),
			}

			mu.Lock()
			entries = append(entries, entry)
			mu.Unlock()
		}(participantID)
	}
	wg.Wait()

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Steps != entries[j].Steps {
			return entries[i].Steps > entries[j].Steps
		}
		return entries[i].UserID < entries[j].UserID
	})
	return entries
}
