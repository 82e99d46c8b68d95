package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"fitcats/db"
	"fitcats/models"
	"fitcats/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-01-01 was a Monday; the tests anchor week windows there.
var (
	monday     = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	midWeek    = time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)
	nextMonday = time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	nextWeek   = time.Date(2024, 1, 10, 9, 30, 0, 0, time.UTC)
)

func seedUser(t *testing.T, st store.Store, user models.User) {
	t.Helper()
	require.NoError(t, st.Set(context.Background(), db.UsersCollection, user.ID, user))
}

func getUser(t *testing.T, st store.Store, id string) models.User {
	t.Helper()
	var user models.User
	require.NoError(t, st.Get(context.Background(), db.UsersCollection, id, &user))
	return user
}

func newTestTracker(t *testing.T) (*StepTracker, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	return NewStepTracker(st, newTestRanks(t)), st
}

func TestWeekWindows(t *testing.T) {
	assert.Equal(t, monday, WeekStart(midWeek))
	assert.Equal(t, monday, WeekStart(monday))
	assert.Equal(t, nextMonday, WeekEnd(midWeek))
	assert.Equal(t, "2024-W01", WeekID(midWeek))
	assert.Equal(t, "2024-W02", WeekID(nextWeek))

	start, err := weekStartFor("2024-W02", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, nextMonday, start)

	_, err = weekStartFor("garbage", time.UTC)
	assert.Error(t, err)
}

func TestNeedsRollover(t *testing.T) {
	assert.False(t, NeedsRollover(nextMonday, midWeek))
	assert.False(t, NeedsRollover(nextMonday, time.Date(2024, 1, 7, 23, 59, 0, 0, time.UTC)))
	assert.True(t, NeedsRollover(nextMonday, nextMonday))
	assert.True(t, NeedsRollover(nextMonday, nextWeek))
}

func TestObserveReplacesCumulativeValue(t *testing.T) {
	tracker, st := newTestTracker(t)
	seedUser(t, st, models.User{ID: "u1", Username: "ana", LastRolloverWeek: WeekID(midWeek)})

	require.NoError(t, tracker.ObserveSteps(context.Background(), "u1", 100, midWeek))
	require.NoError(t, tracker.ObserveSteps(context.Background(), "u1", 250, midWeek.Add(time.Hour)))

	user := getUser(t, st, "u1")
	assert.Equal(t, 250, user.ThisWeekSteps, "observation replaces, never accumulates")
	assert.Equal(t, 250, user.Statistics.TotalSteps)
}

func TestObserveToleratesDownwardRevision(t *testing.T) {
	tracker, st := newTestTracker(t)
	seedUser(t, st, models.User{ID: "u1", LastRolloverWeek: WeekID(midWeek)})

	require.NoError(t, tracker.ObserveSteps(context.Background(), "u1", 300, midWeek))
	require.NoError(t, tracker.ObserveSteps(context.Background(), "u1", 200, midWeek.Add(time.Hour)))

	user := getUser(t, st, "u1")
	assert.Equal(t, 200, user.ThisWeekSteps)
	// Accumulated history never shrinks on a downward revision.
	assert.Equal(t, 300, user.Statistics.TotalSteps)
}

func TestObserveRejectsNegativeSteps(t *testing.T) {
	tracker, _ := newTestTracker(t)
	err := tracker.ObserveSteps(context.Background(), "u1", -5, midWeek)
	var validationErr *ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestRolloverIsIdempotentPerWeek(t *testing.T) {
	tracker, st := newTestTracker(t)
	seedUser(t, st, models.User{
		ID:               "u1",
		ThisWeekSteps:    30000,
		LastWeekSteps:    11111,
		LastRolloverWeek: WeekID(midWeek),
	})

	user := getUser(t, st, "u1")
	require.NoError(t, tracker.Rollover(context.Background(), &user, nextWeek))
	require.NoError(t, tracker.Rollover(context.Background(), &user, nextWeek))

	stored := getUser(t, st, "u1")
	assert.Equal(t, 0, stored.ThisWeekSteps)
	assert.Equal(t, 30000, stored.LastWeekSteps, "second rollover must not double-shift")
	assert.Equal(t, []int{30000}, stored.Statistics.StepsPerWeek)
	assert.Equal(t, []string{"Cheetah"}, stored.Statistics.Ranks)
	assert.Equal(t, WeekID(nextWeek), stored.LastRolloverWeek)
}

func TestBackdatedObservationDoesNotCloseOpenWeek(t *testing.T) {
	tracker, st := newTestTracker(t)
	seedUser(t, st, models.User{
		ID:               "u1",
		ThisWeekSteps:    30000,
		LastRolloverWeek: WeekID(nextWeek),
	})

	// An observation stamped into the prior week must not close the open
	// week, and a current one right after must not close it either.
	require.NoError(t, tracker.ObserveSteps(context.Background(), "u1", 100, midWeek))
	require.NoError(t, tracker.ObserveSteps(context.Background(), "u1", 31000, nextWeek))

	user := getUser(t, st, "u1")
	assert.Empty(t, user.Statistics.StepsPerWeek)
	assert.Empty(t, user.Statistics.Ranks)
	assert.Equal(t, 0, user.LastWeekSteps)
	assert.Equal(t, 31000, user.ThisWeekSteps)
	assert.Equal(t, WeekID(nextWeek), user.LastRolloverWeek)
}

func TestObserveTriggersRolloverAcrossBoundary(t *testing.T) {
	tracker, st := newTestTracker(t)
	seedUser(t, st, models.User{
		ID:               "u1",
		ThisWeekSteps:    30000,
		LastRolloverWeek: WeekID(midWeek),
	})

	require.NoError(t, tracker.ObserveSteps(context.Background(), "u1", 5000, nextWeek))

	user := getUser(t, st, "u1")
	assert.Equal(t, 30000, user.LastWeekSteps)
	assert.Equal(t, 5000, user.ThisWeekSteps)
	assert.Equal(t, []int{30000}, user.Statistics.StepsPerWeek)
	assert.Equal(t, "Cat", user.CurrentRank.Name)
}

func TestRolloverStampsFreshUserWithoutClosingAWeek(t *testing.T) {
	tracker, st := newTestTracker(t)
	seedUser(t, st, models.User{ID: "u1"})

	user := getUser(t, st, "u1")
	require.NoError(t, tracker.Rollover(context.Background(), &user, midWeek))

	stored := getUser(t, st, "u1")
	assert.Equal(t, WeekID(midWeek), stored.LastRolloverWeek)
	assert.Empty(t, stored.Statistics.StepsPerWeek)
	assert.Empty(t, stored.Statistics.Ranks)
}

func TestRolloverUpdatesBestRank(t *testing.T) {
	tracker, st := newTestTracker(t)
	seedUser(t, st, models.User{
		ID:               "u1",
		ThisWeekSteps:    45000, // Jaguar
		LastRolloverWeek: WeekID(midWeek),
		Statistics:       models.Statistics{BestRank: "Cat"},
	})

	user := getUser(t, st, "u1")
	require.NoError(t, tracker.Rollover(context.Background(), &user, nextWeek))
	assert.Equal(t, "Jaguar", getUser(t, st, "u1").Statistics.BestRank)
}

func TestObserveEmitsRankChangeEvent(t *testing.T) {
	tracker, st := newTestTracker(t)
	cat := utilsCat(t, tracker)
	seedUser(t, st, models.User{
		ID:               "u1",
		ThisWeekSteps:    20999,
		CurrentRank:      cat,
		LastRolloverWeek: WeekID(midWeek),
	})

	var events []models.StepEvent
	tracker.OnEvent = func(e models.StepEvent) { events = append(events, e) }

	require.NoError(t, tracker.ObserveSteps(context.Background(), "u1", 21000, midWeek))

	require.Len(t, events, 1)
	assert.Equal(t, "rankChange", events[0].Type)
	assert.Equal(t, "Cat", events[0].OldRank)
	assert.Equal(t, "Cheetah", events[0].NewRank)
	assert.Equal(t, "Cheetah", getUser(t, st, "u1").CurrentRank.Name)
}

func utilsCat(t *testing.T, tracker *StepTracker) models.Rank {
	t.Helper()
	cat, err := tracker.ranks.RankFor(0)
	require.NoError(t, err)
	return cat
}

func TestObserveAccruesActiveLeagueSteps(t *testing.T) {
	tracker, st := newTestTracker(t)

	league := models.League{
		ID:           "lg1",
		Name:         "January Sprint",
		StartDate:    monday,
		EndDate:      nextMonday,
		Participants: []string{"u1"},
		IsActive:     true,
		CreatedBy:    "u1",
	}
	require.NoError(t, st.Set(context.Background(), db.LeaguesCollection, league.ID, league))
	seedUser(t, st, models.User{
		ID:               "u1",
		Leagues:          []string{"lg1"},
		LastRolloverWeek: WeekID(midWeek),
	})

	require.NoError(t, tracker.ObserveSteps(context.Background(), "u1", 400, midWeek))
	require.NoError(t, tracker.ObserveSteps(context.Background(), "u1", 1000, midWeek.Add(time.Hour)))

	user := getUser(t, st, "u1")
	assert.Equal(t, 1000, user.StepsInLeague("lg1"))
}

// failingStore wraps a Store and fails writes on demand.
type failingStore struct {
	store.Store
	failUpdates bool
}

var errStoreDown = errors.New("store down")

func (f *failingStore) UpdateFields(ctx context.Context, collection, id string, ops map[string]store.FieldOp) error {
	if f.failUpdates {
		return errStoreDown
	}
	return f.Store.UpdateFields(ctx, collection, id, ops)
}

func TestObservePropagatesPersistenceError(t *testing.T) {
	memory := store.NewMemoryStore()
	failing := &failingStore{Store: memory, failUpdates: true}
	tracker := NewStepTracker(failing, newTestRanks(t))
	seedUser(t, memory, models.User{ID: "u1", LastRolloverWeek: WeekID(midWeek)})

	err := tracker.ObserveSteps(context.Background(), "u1", 100, midWeek)
	var persistenceErr *PersistenceError
	require.ErrorAs(t, err, &persistenceErr)
	assert.ErrorIs(t, err, errStoreDown)
}
