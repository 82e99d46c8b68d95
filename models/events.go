package models

import "time"

// StepEvent is pushed to connected websocket clients when a user's observed
// steps change, and additionally carries the old/new rank on a rank change.
type StepEvent struct {
	Type      string    `json:"type"` // "steps" or "rankChange"
	UserID    string    `json:"userId"`
	Steps     int       `json:"steps"`
	OldRank   string    `json:"oldRank,omitempty"`
	NewRank   string    `json:"newRank,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
