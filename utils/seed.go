package utils

import (
	"context"
	"log"

	"fitcats/db"
	"fitcats/models"
	"fitcats/store"
)

// DefaultLadder is the animal rank ladder seeded into an empty ranks
// collection: contiguous 21000-step bands starting at 0, top rank unbounded.
func DefaultLadder() []models.Rank {
	return []models.Rank{
		{Name: "Cat", ImageName: "rank1", Color: "#9F8F7F", MinSteps: 0, MaxSteps: 20999},
		{Name: "Cheetah", ImageName: "rank2", Color: "#F2CA8F", MinSteps: 21000, MaxSteps: 41999},
		{Name: "Jaguar", ImageName: "rank3", Color: "#353535", MinSteps: 42000, MaxSteps: 62999},
		{Name: "Leopard", ImageName: "rank4", Color: "#F1DFBB", MinSteps: 63000, MaxSteps: 83999},
		{Name: "Tiger", ImageName: "rank5", Color: "#FFAD41", MinSteps: 84000, MaxSteps: 104999},
		{Name: "Lion", ImageName: "rank6", Color: "#AB3517", MinSteps: 105000, MaxSteps: models.RankMaxUnbounded},
	}
}

// SeedRanks writes the default ladder when the ranks collection is empty.
func SeedRanks(ctx context.Context, st store.Store) error {
	var existing []models.Rank
	if err := st.ListAll(ctx, db.RanksCollection, &existing); err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, rank := range DefaultLadder() {
		if err := st.Set(ctx, db.RanksCollection, rank.Name, rank); err != nil {
			return err
		}
	}
	log.Printf("Seeded %d ranks", len(DefaultLadder()))
	return nil
}
