package controllers

import (
	"net/http"

	"fitcats/structs"

	"github.com/gin-gonic/gin"
)

// SignUp creates the Cognito account and the user document, then begins the
// session. Sign-up failures surface a single human-readable message.
func SignUp(c *gin.Context) {
	var request structs.SignUpRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	user, err := authService.SignUp(c.Request.Context(), request.Username, request.Email, request.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	sessions.Begin(user.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Sign-up successful", "userId": user.ID})
}

// Login authenticates against Cognito and begins the session.
func Login(c *gin.Context) {
	var request structs.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": "Check email and password format"})
		return
	}

	token, userID, err := authService.SignIn(c.Request.Context(), request.Email, request.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	sessions.Begin(userID)
	c.JSON(http.StatusOK, gin.H{"message": "Sign-in successful", "accessToken": token, "userId": userID})
}

// Logout revokes the session's tokens and tears the session down. The step
// subscription is cancelled wholesale, not operation by operation.
func Logout(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if token, ok := c.Get("accessToken"); ok {
		if err := authService.SignOut(c.Request.Context(), token.(string)); err != nil {
			respondServiceError(c, err)
			return
		}
	}

	sessions.End(userID.(string))
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

// GetSession reports the observable signed-in flag that gates which top-level
// screen a fresh client launch lands on.
func GetSession(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	session, ok := sessions.Get(userID.(string))
	c.JSON(http.StatusOK, gin.H{"isSignedIn": ok && session.IsSignedIn()})
}
