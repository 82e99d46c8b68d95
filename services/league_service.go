package services

import (
	"context"
	"log"
	"time"

	"fitcats/db"
	"fitcats/models"
	"fitcats/store"

	"github.com/google/uuid"
)

// LeagueService owns the league lifecycle: creation with invite fan-out,
// invite responses, and the one-way transition to completed.
type LeagueService struct {
	store store.Store
}

func NewLeagueService(st store.Store) *LeagueService {
	return &LeagueService{store: st}
}

// CreateLeague validates its inputs, commits the league with the creator as
// sole participant, then fans out one invite write per invitee. Each invite
// write is independent: a failed one is logged and does not roll back the
// league or the other invites.
func (s *LeagueService) CreateLeague(ctx context.Context, creatorID, name string, start, end time.Time, invitees []string) (*models.League, error) {
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if start.After(end) {
		return nil, &ValidationError{Field: "startDate", Reason: "must not be after endDate"}
	}

	league := models.League{
		ID:           uuid.NewString(),
		Name:         name,
		StartDate:    start,
		EndDate:      end,
		Participants: []string{creatorID},
		IsActive:     true,
		CreatedBy:    creatorID,
	}

	if err := s.store.Set(ctx, db.LeaguesCollection, league.ID, league); err != nil {
		return nil, persistence("set", db.LeaguesCollection, league.ID, err)
	}

	if err := s.store.UpdateFields(ctx, db.UsersCollection, creatorID, map[string]store.FieldOp{
		"leagues": store.StringsUnion(league.ID),
	}); err != nil {
		log.Printf("Failed to record league %s on creator %s: %v", league.ID, creatorID, err)
	}

	s.sendInvitations(ctx, league.ID, invitees)
	return &league, nil
}

// sendInvitations writes an invite marker to each invitee's leagueInvites.
func (s *LeagueService) sendInvitations(ctx context.Context, leagueID string, invitees []string) {
	for _, inviteeID := range invitees {
		err := s.store.UpdateFields(ctx, db.UsersCollection, inviteeID, map[string]store.FieldOp{
			"leagueInvites": store.StringsUnion(leagueID),
		})
		if err != nil {
			log.Printf("Error sending invite to %s for league %s: %v", inviteeID, leagueID, err)
		}
	}
}

// RespondToInvite accepts or declines a league invite. Accepting adds the
// user to the participant set and clears the invite marker; declining only
// clears the marker. Responding to an already-resolved invite is a no-op;
// accepting without ever having been invited is rejected.
func (s *LeagueService) RespondToInvite(ctx context.Context, userID, leagueID string, accept bool) error {
	var user models.User
	if err := s.store.Get(ctx, db.UsersCollection, userID, &user); err != nil {
		return persistence("get", db.UsersCollection, userID, err)
	}
	if !user.HasLeagueInvite(leagueID) {
		if accept && !user.HasLeague(leagueID) {
			return &ValidationError{Field: "leagueId", Reason: "no pending invite for this league"}
		}
		return nil
	}

	if accept {
		if err := s.store.UpdateFields(ctx, db.LeaguesCollection, leagueID, map[string]store.FieldOp{
			"participants": store.StringsUnion(userID),
		}); err != nil {
			return persistence("update", db.LeaguesCollection, leagueID, err)
		}
		if err := s.store.UpdateFields(ctx, db.UsersCollection, userID, map[string]store.FieldOp{
			"leagues":       store.StringsUnion(leagueID),
			"leagueInvites": store.StringsRemove(leagueID),
		}); err != nil {
			return persistence("update", db.UsersCollection, userID, err)
		}
		return nil
	}

	if err := s.store.UpdateFields(ctx, db.UsersCollection, userID, map[string]store.FieldOp{
		"leagueInvites": store.StringsRemove(leagueID),
	}); err != nil {
		return persistence("update", db.UsersCollection, userID, err)
	}
	return nil
}

// CompleteIfEnded flips the league inactive once its end date has passed.
// The transition is one-way; completed leagues never reopen.
func (s *LeagueService) CompleteIfEnded(ctx context.Context, league *models.League, now time.Time) (bool, error) {
	if !league.IsActive || !league.Ended(now) {
		return false, nil
	}
	if err := s.store.UpdateFields(ctx, db.LeaguesCollection, league.ID, map[string]store.FieldOp{
		"isActive": store.Set(false),
	}); err != nil {
		return false, persistence("update", db.LeaguesCollection, league.ID, err)
	}
	league.IsActive = false
	return true, nil
}

// Get fetches a league by id.
func (s *LeagueService) Get(ctx context.Context, leagueID string) (*models.League, error) {
	var league models.League
	if err := s.store.Get(ctx, db.LeaguesCollection, leagueID, &league); err != nil {
		return nil, persistence("get", db.LeaguesCollection, leagueID, err)
	}
	return &league, nil
}

// InvitesFor returns the leagues the user was invited to but has not joined.
func (s *LeagueService) InvitesFor(ctx context.Context, user *models.User) ([]models.League, error) {
	invites := make([]models.League, 0, len(user.LeagueInvites))
	for _, leagueID := range user.LeagueInvites {
		var league models.League
		if err := s.store.Get(ctx, db.LeaguesCollection, leagueID, &league); err != nil {
			log.Printf("Skipping unresolvable league invite %s: %v", leagueID, err)
			continue
		}
		if league.HasParticipant(user.ID) {
			continue
		}
		invites = append(invites, league)
	}
	return invites, nil
}

// ActiveLeaguesFor returns the active leagues the user participates in,
// lazily completing any whose end date has passed.
func (s *LeagueService) ActiveLeaguesFor(ctx context.Context, user *models.User, now time.Time) ([]models.League, error) {
	return s.leaguesFor(ctx, user, now, true)
}

// CompletedLeaguesFor returns the user's completed leagues.
func (s *LeagueService) CompletedLeaguesFor(ctx context.Context, user *models.User, now time.Time) ([]models.League, error) {
	return s.leaguesFor(ctx, user, now, false)
}

func (s *LeagueService) leaguesFor(ctx context.Context, user *models.User, now time.Time, active bool) ([]models.League, error) {
	result := make([]models.League, 0, len(user.Leagues))
	for _, leagueID := range user.Leagues {
		var league models.League
		if err := s.store.Get(ctx, db.LeaguesCollection, leagueID, &league); err != nil {
			log.Printf("Skipping unresolvable league %s: %v", leagueID, err)
			continue
		}
		if _, err := s.CompleteIfEnded(ctx, &league, now); err != nil {
			log.Printf("Failed to complete ended league %s: %v", league.ID, err)
		}
		if league.IsActive == active {
			result = append(result, league)
		}
	}
	return result, nil
}
