package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetRanks returns the full ladder in ascending order.
func GetRanks(c *gin.Context) {
	c.JSON(http.StatusOK, rankService.Ladder())
}

// GetCurrentRank derives the user's rank from this week's steps and reports
// the neighbors plus the distance to the next rung.
func GetCurrentRank(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	current, err := rankService.RankFor(user.ThisWeekSteps)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response := gin.H{
		"current": current,
		"steps":   user.ThisWeekSteps,
	}
	if next := rankService.NextRank(current); next != nil {
		response["next"] = next
		response["stepsToNext"] = next.MinSteps - user.ThisWeekSteps
	}
	if previous := rankService.PreviousRank(current); previous != nil {
		response["previous"] = previous
	}

	c.JSON(http.StatusOK, response)
}
