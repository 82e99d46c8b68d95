package models

import "time"

// League is a multi-participant step competition.
type League struct {
	ID           string    `bson:"_id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	StartDate    time.Time `bson:"startDate" json:"startDate"`
	EndDate      time.Time `bson:"endDate" json:"endDate"`
	Participants []string  `bson:"participants" json:"participants"`
	IsActive     bool      `bson:"isActive" json:"isActive"`
	CreatedBy    string    `bson:"createdBy" json:"createdBy"`
}

// HasParticipant reports whether the user already joined this league.
func (l *League) HasParticipant(userID string) bool {
	for _, p := range l.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// Ended reports whether the league's end date has passed.
func (l *League) Ended(now time.Time) bool {
	return now.After(l.EndDate)
}

// LeaderboardEntry is an ephemeral per-view projection; it is never persisted.
type LeaderboardEntry struct {
	UserID    string `json:"userId"`
	Name      string `json:"name"`
	RankImage string `json:"rankImage"`
	Steps     int    `json:"steps"`
}
