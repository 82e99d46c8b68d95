package controllers

import (
	"errors"
	"net/http"

	"fitcats/db"
	"fitcats/models"
	"fitcats/services"
	"fitcats/store"

	"github.com/gin-gonic/gin"
)

// Package-level services wired once at startup, mirroring the Init pattern
// used across the service layer.
var (
	documents    store.Store
	authService  *services.AuthService
	rankService  *services.RankService
	stepTracker  *services.StepTracker
	leagues      *services.LeagueService
	leaderboards *services.LeaderboardService
	social       *services.SocialGraphService
	sessions     *services.SessionManager
)

// Init wires the controllers to their services.
func Init(
	st store.Store,
	auth *services.AuthService,
	ranks *services.RankService,
	tracker *services.StepTracker,
	leagueSvc *services.LeagueService,
	leaderboardSvc *services.LeaderboardService,
	socialSvc *services.SocialGraphService,
	sessionMgr *services.SessionManager,
) {
	documents = st
	authService = auth
	rankService = ranks
	stepTracker = tracker
	leagues = leagueSvc
	leaderboards = leaderboardSvc
	social = socialSvc
	sessions = sessionMgr
}

// currentUser resolves the authenticated user's document. A missing context
// id or document aborts the request.
func currentUser(c *gin.Context) (*models.User, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return nil, false
	}

	var user models.User
	if err := documents.Get(c.Request.Context(), db.UsersCollection, userID.(string), &user); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		}
		return nil, false
	}
	return &user, true
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
func respondServiceError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	var authErr *services.AuthError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.As(err, &authErr):
		c.JSON(http.StatusUnauthorized, gin.H{"error": authErr.Message})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, services.ErrNoRankConfigured):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Rank ladder is not configured"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Operation failed"})
	}
}
