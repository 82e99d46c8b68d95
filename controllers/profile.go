package controllers

import (
	"net/http"

	"fitcats/db"
	"fitcats/models"

	"github.com/gin-gonic/gin"
)

// GetProfile returns the authenticated user's record.
func GetProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetStatistics returns the user's historical statistics plus how often each
// rank on the ladder was achieved.
func GetStatistics(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	achievements := make([]gin.H, 0, len(rankService.Ladder()))
	for _, rank := range rankService.Ladder() {
		achievements = append(achievements, gin.H{
			"rank":  rank.Name,
			"count": rankService.AchievementCount(user, rank),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"statistics":   user.Statistics,
		"lastWeek":     user.LastWeekSteps,
		"thisWeek":     user.ThisWeekSteps,
		"achievements": achievements,
	})
}

// ListUsers returns the minimal user pool used by the friend-search screen.
func ListUsers(c *gin.Context) {
	var users []models.User
	if err := documents.ListAll(c.Request.Context(), db.UsersCollection, &users); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	type userSummary struct {
		ID       string      `json:"id"`
		Username string      `json:"username"`
		Rank     models.Rank `json:"currentRank"`
	}
	summaries := make([]userSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, userSummary{ID: u.ID, Username: u.Username, Rank: u.CurrentRank})
	}
	c.JSON(http.StatusOK, summaries)
}
