package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"fitcats/db"
	"fitcats/models"

	"github.com/gin-gonic/gin"
)

// Leaderboard responses are advisory display data; a short cache keeps the
// per-participant fan-out from running on every refresh.
const leaderboardCacheTTL = 5 * time.Second

// GetLeaderboard computes the ranked standing for a league the requester
// participates in.
func GetLeaderboard(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	leagueID := c.Param("id")

	// The participant check runs before the cache is consulted, so a warm
	// cache never leaks a standing to a non-participant.
	league, err := leagues.Get(c.Request.Context(), leagueID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !league.HasParticipant(userID.(string)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not a participant of this league"})
		return
	}

	cacheKey := "leaderboard:" + leagueID
	if db.RedisClient != nil {
		cached, err := db.RedisClient.Get(c.Request.Context(), cacheKey).Result()
		if err == nil {
			var entries []models.LeaderboardEntry
			if json.Unmarshal([]byte(cached), &entries) == nil {
				c.JSON(http.StatusOK, entries)
				return
			}
		}
	}

	entries := leaderboards.ComputeLeaderboard(c.Request.Context(), league)

	if db.RedisClient != nil {
		if payload, err := json.Marshal(entries); err == nil {
			db.RedisClient.Set(c.Request.Context(), cacheKey, payload, leaderboardCacheTTL)
		}
	}

	c.JSON(http.StatusOK, entries)
}
