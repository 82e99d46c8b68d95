package controllers

import (
	"net/http"
	"time"

	"fitcats/structs"

	"github.com/gin-gonic/gin"
)

// CreateLeague validates and commits a league, then fans out the invites.
func CreateLeague(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request structs.CreateLeagueRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	league, err := leagues.CreateLeague(c.Request.Context(), userID.(string), request.Name,
		request.StartDate, request.EndDate, request.Invitees)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, league)
}

// GetInvites lists leagues the user was invited to but has not joined.
func GetInvites(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	invites, err := leagues.InvitesFor(c.Request.Context(), user)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, invites)
}

// GetActiveLeagues lists the user's active leagues.
func GetActiveLeagues(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	active, err := leagues.ActiveLeaguesFor(c.Request.Context(), user, time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, active)
}

// GetCompletedLeagues lists the user's completed leagues.
func GetCompletedLeagues(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	completed, err := leagues.CompletedLeaguesFor(c.Request.Context(), user, time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, completed)
}

// RespondToInvite accepts or declines a league invite. Re-responding to an
// already-resolved invite is a no-op, not an error.
func RespondToInvite(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request structs.RespondToInviteRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	leagueID := c.Param("id")
	if err := leagues.RespondToInvite(c.Request.Context(), userID.(string), leagueID, request.Accept); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invite resolved"})
}
