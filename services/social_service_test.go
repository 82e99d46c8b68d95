package services

import (
	"context"
	"testing"

	"fitcats/models"
	"fitcats/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSocial(t *testing.T) (*SocialGraphService, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	seedUser(t, st, models.User{ID: "alice"})
	seedUser(t, st, models.User{ID: "bob"})
	return NewSocialGraphService(st), st
}

func TestSendRequestRejectsSelf(t *testing.T) {
	svc, _ := newTestSocial(t)

	err := svc.SendRequest(context.Background(), "alice", "alice")
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestSendRequestIsIdempotent(t *testing.T) {
	svc, st := newTestSocial(t)

	require.NoError(t, svc.SendRequest(context.Background(), "alice", "bob"))
	require.NoError(t, svc.SendRequest(context.Background(), "alice", "bob"))

	bob := getUser(t, st, "bob")
	assert.Equal(t, []string{"alice"}, bob.FriendRequests)
}

func TestAcceptEstablishesMutualEdge(t *testing.T) {
	svc, st := newTestSocial(t)

	require.NoError(t, svc.SendRequest(context.Background(), "alice", "bob"))
	require.NoError(t, svc.Accept(context.Background(), "bob", "alice"))

	bob := getUser(t, st, "bob")
	alice := getUser(t, st, "alice")
	assert.True(t, bob.HasFriend("alice"))
	assert.True(t, alice.HasFriend("bob"))
	assert.Empty(t, bob.FriendRequests)
}

func TestDeclineOnlyClearsRequest(t *testing.T) {
	svc, st := newTestSocial(t)

	require.NoError(t, svc.SendRequest(context.Background(), "alice", "bob"))
	require.NoError(t, svc.Decline(context.Background(), "bob", "alice"))

	bob := getUser(t, st, "bob")
	assert.Empty(t, bob.FriendRequests)
	assert.False(t, bob.HasFriend("alice"))
	assert.False(t, getUser(t, st, "alice").HasFriend("bob"))
}

func TestRemoveThenReAcceptLeavesNoResidue(t *testing.T) {
	svc, st := newTestSocial(t)

	require.NoError(t, svc.SendRequest(context.Background(), "alice", "bob"))
	require.NoError(t, svc.Accept(context.Background(), "bob", "alice"))
	require.NoError(t, svc.Remove(context.Background(), "alice", "bob"))

	assert.False(t, getUser(t, st, "alice").HasFriend("bob"))
	assert.False(t, getUser(t, st, "bob").HasFriend("alice"))

	// A fresh request between the same pair re-establishes the full edge.
	require.NoError(t, svc.SendRequest(context.Background(), "bob", "alice"))
	require.NoError(t, svc.Accept(context.Background(), "alice", "bob"))

	alice := getUser(t, st, "alice")
	bob := getUser(t, st, "bob")
	assert.Equal(t, []string{"bob"}, alice.Friends)
	assert.Equal(t, []string{"alice"}, bob.Friends)
	assert.Empty(t, alice.FriendRequests)
}

func TestAcceptToleratesMissingReverseSide(t *testing.T) {
	svc, st := newTestSocial(t)

	require.NoError(t, svc.SendRequest(context.Background(), "ghost", "bob"))
	// The requester's document is gone; the accept still succeeds and the
	// edge is left asymmetric for the reconciliation sweep.
	require.NoError(t, svc.Accept(context.Background(), "bob", "ghost"))
	assert.True(t, getUser(t, st, "bob").HasFriend("ghost"))
}

func TestResolveSkipsUnresolvableUsers(t *testing.T) {
	svc, st := newTestSocial(t)

	require.NoError(t, svc.SendRequest(context.Background(), "alice", "bob"))
	require.NoError(t, svc.Accept(context.Background(), "bob", "alice"))

	bob := getUser(t, st, "bob")
	bob.Friends = append(bob.Friends, "deleted-user")
	friends := svc.Friends(context.Background(), &bob)
	require.Len(t, friends, 1)
	assert.Equal(t, "alice", friends[0].ID)
}
