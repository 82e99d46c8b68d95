package controllers

import (
	"net/http"
	"time"

	"fitcats/structs"

	"github.com/gin-gonic/gin"
)

// ObserveSteps ingests a client-pushed cumulative step observation for the
// open week window. The value replaces the stored weekly total.
func ObserveSteps(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var request structs.ObserveStepsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "message": err.Error()})
		return
	}

	at := time.Now()
	if request.At != nil {
		at = *request.At
	}

	if err := stepTracker.ObserveSteps(c.Request.Context(), userID.(string), request.Steps, at); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Steps recorded"})
}
