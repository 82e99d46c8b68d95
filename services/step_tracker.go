package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"fitcats/db"
	"fitcats/models"
	"fitcats/store"
)

// StepTracker maintains per-user weekly step totals. Sensor queries return a
// running cumulative sum for the open week window, so every observation
// replaces the stored total rather than accumulating onto it.
type StepTracker struct {
	store store.Store
	ranks *RankService

	// OnEvent, when set, receives a StepEvent for every observation and a
	// rankChange event whenever the derived rank moves. Wired to the
	// websocket hub by the server; left nil in tests.
	OnEvent func(models.StepEvent)
}

func NewStepTracker(st store.Store, ranks *RankService) *StepTracker {
	return &StepTracker{store: st, ranks: ranks}
}

// WeekStart returns Monday 00:00 of the week containing t, in t's location.
func WeekStart(t time.Time) time.Time {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(t.Weekday()) + 6) % 7 // Monday = 0
	return midnight.AddDate(0, 0, -offset)
}

// WeekEnd returns the following Monday 00:00, the exclusive end of t's window.
func WeekEnd(t time.Time) time.Time {
	return WeekStart(t).AddDate(0, 0, 7)
}

// WeekID returns the ISO week identifier for t, e.g. "2026-W35". Rollover is
// keyed against this id so repeating it within one week is a no-op.
func WeekID(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// NeedsRollover reports whether now has crossed into a week that starts at or
// after the previous window's end.
func NeedsRollover(lastWindowEnd, now time.Time) bool {
	return !WeekStart(now).Before(lastWindowEnd)
}

// weekStartFor returns Monday 00:00 of the ISO week the id names, in loc.
func weekStartFor(id string, loc *time.Location) (time.Time, error) {
	var year, week int
	if _, err := fmt.Sscanf(id, "%d-W%d", &year, &week); err != nil {
		return time.Time{}, fmt.Errorf("malformed week id %q: %w", id, err)
	}
	// January 4th always falls in ISO week 1.
	week1 := WeekStart(time.Date(year, time.January, 4, 0, 0, 0, 0, loc))
	return week1.AddDate(0, 0, (week-1)*7), nil
}

// ObserveSteps records a cumulative step observation for the user's open week
// window. It rolls the week over first if the observation belongs to a new
// week, accrues the positive delta into statistics and active league totals,
// and re-derives the current rank. Local state updates optimistically; a
// failed persist returns a PersistenceError without truncating it.
func (t *StepTracker) ObserveSteps(ctx context.Context, userID string, steps int, at time.Time) error {
	if steps < 0 {
		return &ValidationError{Field: "steps", Reason: "must be non-negative"}
	}

	var user models.User
	if err := t.store.Get(ctx, db.UsersCollection, userID, &user); err != nil {
		return persistence("get", db.UsersCollection, userID, err)
	}

	if err := t.Rollover(ctx, &user, at); err != nil {
		return err
	}

	previous := user.ThisWeekSteps
	delta := steps - previous
	if delta < 0 {
		// The sensor revised the cumulative value downwards; replace the
		// weekly total but never subtract from accumulated history.
		delta = 0
	}

	user.ThisWeekSteps = steps
	user.Statistics.TotalSteps += delta
	if delta > 0 {
		t.accrueLeagueSteps(ctx, &user, delta, at)
	}

	oldRank := user.CurrentRank
	newRank, err := t.ranks.RankFor(steps)
	if err != nil {
		return err
	}
	user.CurrentRank = newRank

	if err := t.store.UpdateFields(ctx, db.UsersCollection, userID, map[string]store.FieldOp{
		"thisWeekSteps": store.Set(user.ThisWeekSteps),
		"statistics":    store.Set(user.Statistics),
		"leagueSteps":   store.Set(user.LeagueSteps),
		"currentRank":   store.Set(user.CurrentRank),
	}); err != nil {
		return persistence("update", db.UsersCollection, userID, err)
	}

	t.emit(user.ID, steps, oldRank, newRank, at)
	return nil
}

// Rollover closes the previous week if the user's stored window is stale:
// this week's total moves to lastWeekSteps, the closed total and the rank
// held at close are appended to statistics, and the weekly total resets.
// Idempotent per week boundary via the stored week identifier.
func (t *StepTracker) Rollover(ctx context.Context, user *models.User, now time.Time) error {
	weekID := WeekID(now)
	if user.LastRolloverWeek == weekID {
		return nil
	}

	if user.LastRolloverWeek == "" {
		// Fresh user: stamp the open week, nothing to close yet.
		user.LastRolloverWeek = weekID
		if err := t.store.UpdateFields(ctx, db.UsersCollection, user.ID, map[string]store.FieldOp{
			"lastRolloverWeek": store.Set(weekID),
		}); err != nil {
			return persistence("update", db.UsersCollection, user.ID, err)
		}
		return nil
	}

	lastStart, err := weekStartFor(user.LastRolloverWeek, now.Location())
	if err != nil {
		return &ValidationError{Field: "lastRolloverWeek", Reason: err.Error()}
	}
	if !NeedsRollover(lastStart.AddDate(0, 0, 7), now) {
		// A backdated observation lands before the open window; the open
		// week only closes once time crosses its end, never retroactively.
		return nil
	}

	closed := user.ThisWeekSteps
	closedRank, err := t.ranks.RankFor(closed)
	if err != nil {
		return err
	}

	user.LastWeekSteps = closed
	user.ThisWeekSteps = 0
	user.Statistics.StepsPerWeek = append(user.Statistics.StepsPerWeek, closed)
	user.Statistics.Ranks = append(user.Statistics.Ranks, closedRank.Name)
	user.LastRolloverWeek = weekID

	if best, err := t.bestRank(user, closedRank); err == nil {
		user.Statistics.BestRank = best
	}

	baseline, err := t.ranks.RankFor(0)
	if err != nil {
		return err
	}
	user.CurrentRank = baseline

	if err := t.store.UpdateFields(ctx, db.UsersCollection, user.ID, map[string]store.FieldOp{
		"thisWeekSteps":    store.Set(0),
		"lastWeekSteps":    store.Set(closed),
		"statistics":       store.Set(user.Statistics),
		"currentRank":      store.Set(user.CurrentRank),
		"lastRolloverWeek": store.Set(weekID),
	}); err != nil {
		return persistence("update", db.UsersCollection, user.ID, err)
	}
	return nil
}

func (t *StepTracker) bestRank(user *models.User, closedRank models.Rank) (string, error) {
	if user.Statistics.BestRank == "" {
		return closedRank.Name, nil
	}
	for _, r := range t.ranks.Ladder() {
		if r.Name == user.Statistics.BestRank {
			if t.ranks.Better(closedRank, r) {
				return closedRank.Name, nil
			}
			return r.Name, nil
		}
	}
	return closedRank.Name, nil
}

// accrueLeagueSteps adds the observation delta to every active league the
// user participates in whose date window covers the observation time. Each
// league lookup is independent; a failed lookup is logged and skipped.
func (t *StepTracker) accrueLeagueSteps(ctx context.Context, user *models.User, delta int, at time.Time) {
	for _, leagueID := range user.Leagues {
		var league models.League
		if err := t.store.Get(ctx, db.LeaguesCollection, leagueID, &league); err != nil {
			log.Printf("Skipping league %s during step accrual: %v", leagueID, err)
			continue
		}
		if !league.IsActive || at.Before(league.StartDate) || at.After(league.EndDate) {
			continue
		}

		found := false
		for i := range user.LeagueSteps {
			if user.LeagueSteps[i].League == leagueID {
				user.LeagueSteps[i].Steps += delta
				found = true
				break
			}
		}
		if !found {
			user.LeagueSteps = append(user.LeagueSteps, models.LeagueSteps{League: leagueID, Steps: delta})
		}
	}
}

func (t *StepTracker) emit(userID string, steps int, oldRank, newRank models.Rank, at time.Time) {
	if t.OnEvent == nil {
		return
	}
	event := models.StepEvent{Type: "steps", UserID: userID, Steps: steps, Timestamp: at}
	if oldRank.Name != newRank.Name {
		event.Type = "rankChange"
		event.OldRank = oldRank.Name
		event.NewRank = newRank.Name
	}
	t.OnEvent(event)
}
