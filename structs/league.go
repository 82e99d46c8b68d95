package structs

import "time"

type CreateLeagueRequest struct {
	Name      string    `json:"name" binding:"required"`
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
	Invitees  []string  `json:"invitees"`
}

type RespondToInviteRequest struct {
	Accept bool `json:"accept"`
}

type ObserveStepsRequest struct {
	Steps int        `json:"steps" binding:"min=0"`
	At    *time.Time `json:"at"`
}
