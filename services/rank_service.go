package services

import (
	"context"
	"fmt"
	"sort"

	"fitcats/db"
	"fitcats/models"
	"fitcats/store"
)

// RankService answers ladder lookups against a table loaded once at startup.
// Lookups are pure functions over the cached ladder; no I/O after load.
type RankService struct {
	ladder []models.Rank // sorted by MinSteps ascending
}

// NewRankService loads the ladder from the ranks collection and validates it.
func NewRankService(ctx context.Context, st store.Store) (*RankService, error) {
	var ladder []models.Rank
	if err := st.ListAll(ctx, db.RanksCollection, &ladder); err != nil {
		return nil, persistence("list", db.RanksCollection, "*", err)
	}
	return NewRankServiceFromLadder(ladder)
}

// NewRankServiceFromLadder builds the service from an already-fetched ladder.
func NewRankServiceFromLadder(ladder []models.Rank) (*RankService, error) {
	if len(ladder) == 0 {
		return nil, ErrNoRankConfigured
	}

	sorted := make([]models.Rank, len(ladder))
	copy(sorted, ladder)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].MinSteps < sorted[j].MinSteps })

	if err := validateLadder(sorted); err != nil {
		return nil, err
	}
	return &RankService{ladder: sorted}, nil
}

// validateLadder checks the ladder is contiguous and non-overlapping: starts
// at 0, each max+1 meets the next min, top rank unbounded.
func validateLadder(sorted []models.Rank) error {
	if sorted[0].MinSteps != 0 {
		return fmt.Errorf("rank ladder must start at 0, got %d", sorted[0].MinSteps)
	}
	for i := 0; i < len(sorted)-1; i++ {
		if sorted[i].MaxSteps+1 != sorted[i+1].MinSteps {
			return fmt.Errorf("rank ladder gap between %q and %q", sorted[i].Name, sorted[i+1].Name)
		}
	}
	if top := sorted[len(sorted)-1]; top.MaxSteps != models.RankMaxUnbounded {
		return fmt.Errorf("top rank %q must be unbounded", top.Name)
	}
	return nil
}

// Ladder returns the ranks in ascending order.
func (s *RankService) Ladder() []models.Rank {
	return s.ladder
}

// RankFor returns the unique rank whose interval contains steps.
func (s *RankService) RankFor(steps int) (models.Rank, error) {
	if steps < 0 {
		return models.Rank{}, &ValidationError{Field: "steps", Reason: "must be non-negative"}
	}
	for _, r := range s.ladder {
		if r.Contains(steps) {
			return r, nil
		}
	}
	return models.Rank{}, ErrNoRankConfigured
}

// NextRank returns the ladder entry directly above current, or nil at the top.
func (s *RankService) NextRank(current models.Rank) *models.Rank {
	for i := range s.ladder {
		if s.ladder[i].MinSteps > current.MaxSteps {
			next := s.ladder[i]
			return &next
		}
	}
	return nil
}

// PreviousRank returns the ladder entry directly below current, or nil at the
// bottom.
func (s *RankService) PreviousRank(current models.Rank) *models.Rank {
	var prev *models.Rank
	for i := range s.ladder {
		if s.ladder[i].MaxSteps < current.MinSteps {
			r := s.ladder[i]
			prev = &r
		}
	}
	return prev
}

// AchievementCount returns how many past weeks closed with the given rank.
func (s *RankService) AchievementCount(user *models.User, rank models.Rank) int {
	count := 0
	for _, name := range user.Statistics.Ranks {
		if name == rank.Name {
			count++
		}
	}
	return count
}

// Better reports whether rank a sits higher on the ladder than rank b.
func (s *RankService) Better(a, b models.Rank) bool {
	return a.MinSteps > b.MinSteps
}
