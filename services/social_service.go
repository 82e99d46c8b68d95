package services

import (
	"context"
	"log"

	"fitcats/db"
	"fitcats/models"
	"fitcats/store"
)

// SocialGraphService manages the mutual-friend relation between users. The
// edge spans two user documents and is maintained by paired single-document
// writes, not a transaction: a partial failure leaves a temporary asymmetry
// that an external reconciliation sweep is assumed to repair.
type SocialGraphService struct {
	store store.Store
}

func NewSocialGraphService(st store.Store) *SocialGraphService {
	return &SocialGraphService{store: st}
}

// SendRequest records a pending friend request on the recipient. Requesting
// yourself is a validation error; an already-pending request is a no-op.
func (s *SocialGraphService) SendRequest(ctx context.Context, fromID, toID string) error {
	if fromID == toID {
		return &ValidationError{Field: "userId", Reason: "cannot send a friend request to yourself"}
	}
	if err := s.store.UpdateFields(ctx, db.UsersCollection, toID, map[string]store.FieldOp{
		"friendRequests": store.StringsUnion(fromID),
	}); err != nil {
		return persistence("update", db.UsersCollection, toID, err)
	}
	return nil
}

// Accept establishes the mutual edge and clears the pending request. The
// reverse edge is a second, independent write; its failure is logged but does
// not unwind the accept.
func (s *SocialGraphService) Accept(ctx context.Context, userID, requesterID string) error {
	if err := s.store.UpdateFields(ctx, db.UsersCollection, userID, map[string]store.FieldOp{
		"friends":        store.StringsUnion(requesterID),
		"friendRequests": store.StringsRemove(requesterID),
	}); err != nil {
		return persistence("update", db.UsersCollection, userID, err)
	}

	if err := s.store.UpdateFields(ctx, db.UsersCollection, requesterID, map[string]store.FieldOp{
		"friends": store.StringsUnion(userID),
	}); err != nil {
		log.Printf("Friend edge %s->%s left asymmetric: %v", requesterID, userID, err)
	}
	return nil
}

// Decline clears the pending request without creating an edge.
func (s *SocialGraphService) Decline(ctx context.Context, userID, requesterID string) error {
	if err := s.store.UpdateFields(ctx, db.UsersCollection, userID, map[string]store.FieldOp{
		"friendRequests": store.StringsRemove(requesterID),
	}); err != nil {
		return persistence("update", db.UsersCollection, userID, err)
	}
	return nil
}

// Remove deletes the mutual edge from both sides.
func (s *SocialGraphService) Remove(ctx context.Context, userID, friendID string) error {
	if err := s.store.UpdateFields(ctx, db.UsersCollection, userID, map[string]store.FieldOp{
		"friends": store.StringsRemove(friendID),
	}); err != nil {
		return persistence("update", db.UsersCollection, userID, err)
	}

	if err := s.store.UpdateFields(ctx, db.UsersCollection, friendID, map[string]store.FieldOp{
		"friends": store.StringsRemove(userID),
	}); err != nil {
		log.Printf("Friend edge %s->%s left asymmetric after removal: %v", friendID, userID, err)
	}
	return nil
}

// Friends resolves the user's friend list to full user records, skipping ids
// that no longer resolve.
func (s *SocialGraphService) Friends(ctx context.Context, user *models.User) []models.User {
	return s.resolve(ctx, user.Friends)
}

// PendingRequests resolves the user's incoming friend requests.
func (s *SocialGraphService) PendingRequests(ctx context.Context, user *models.User) []models.User {
	return s.resolve(ctx, user.FriendRequests)
}

func (s *SocialGraphService) resolve(ctx context.Context, ids []string) []models.User {
	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		var user models.User
		if err := s.store.Get(ctx, db.UsersCollection, id, &user); err != nil {
			log.Printf("Skipping unresolvable user %s: %v", id, err)
			continue
		}
		users = append(users, user)
	}
	return users
}
