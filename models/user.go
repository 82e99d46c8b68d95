package models

import "time"

// User defines a user entity. The document id is the identity provider's
// opaque user id, so no ObjectID mapping is needed.
type User struct {
	ID             string        `bson:"_id" json:"id"`
	Username       string        `bson:"username" json:"username"`
	Email          string        `bson:"email" json:"email"`
	ThisWeekSteps  int           `bson:"thisWeekSteps" json:"thisWeekSteps"`
	LastWeekSteps  int           `bson:"lastWeekSteps" json:"lastWeekSteps"`
	CurrentRank    Rank          `bson:"currentRank" json:"currentRank"`
	Friends        []string      `bson:"friends" json:"friends"`
	FriendRequests []string      `bson:"friendRequests" json:"friendRequests"`
	Leagues        []string      `bson:"leagues" json:"leagues"`
	LeagueInvites  []string      `bson:"leagueInvites" json:"leagueInvites"`
	LeagueSteps    []LeagueSteps `bson:"leagueSteps" json:"leagueSteps"`
	Statistics     Statistics    `bson:"statistics" json:"statistics"`

	// LastRolloverWeek is the ISO week id (e.g. "2026-W35") of the most
	// recent weekly rollover, used to keep rollover idempotent.
	LastRolloverWeek string    `bson:"lastRolloverWeek" json:"lastRolloverWeek"`
	CreatedAt        time.Time `bson:"createdAt" json:"createdAt"`
}

// LeagueSteps records a user's step count scoped to a single league.
type LeagueSteps struct {
	League string `bson:"league" json:"league"`
	Steps  int    `bson:"steps" json:"steps"`
}

// Statistics accumulates a user's history across weeks.
type Statistics struct {
	TotalSteps   int      `bson:"totalSteps" json:"totalSteps"`
	StepsPerWeek []int    `bson:"stepsPerWeek" json:"stepsPerWeek"`
	Ranks        []string `bson:"ranks" json:"ranks"` // rank name held at each rollover
	BestRank     string   `bson:"bestRank" json:"bestRank"`
}

// StepsInLeague returns the user's step count for the given league, zero if
// the user has not recorded any league-scoped steps yet.
func (u User) StepsInLeague(leagueID string) int {
	for _, ls := range u.LeagueSteps {
		if ls.League == leagueID {
			return ls.Steps
		}
	}
	return 0
}

// HasFriend reports whether the given user id is already a friend.
func (u User) HasFriend(id string) bool {
	for _, f := range u.Friends {
		if f == id {
			return true
		}
	}
	return false
}

// HasLeague reports whether the user has joined the given league.
func (u User) HasLeague(id string) bool {
	for _, l := range u.Leagues {
		if l == id {
			return true
		}
	}
	return false
}

// HasLeagueInvite reports whether an invite to the given league is pending.
func (u User) HasLeagueInvite(id string) bool {
	for _, l := range u.LeagueInvites {
		if l == id {
			return true
		}
	}
	return false
}
