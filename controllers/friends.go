package controllers

import (
	"net/http"
	"time"

	"fitcats/db"

	"github.com/gin-gonic/gin"
)

// Friend requests are rate limited per sender when redis is available.
const friendRequestRateWindow = 5 * time.Second

// SendFriendRequest records a pending request on the recipient.
func SendFriendRequest(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	fromID := userID.(string)
	toID := c.Param("userId")

	if db.RedisClient != nil {
		rateKey := "friendrequest:rate:" + fromID
		exists, _ := db.RedisClient.Exists(c.Request.Context(), rateKey).Result()
		if exists > 0 {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Please wait before sending another friend request"})
			return
		}
		db.RedisClient.Set(c.Request.Context(), rateKey, "1", friendRequestRateWindow)
	}

	if err := social.SendRequest(c.Request.Context(), fromID, toID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Friend request sent"})
}

// AcceptFriendRequest establishes the mutual edge.
func AcceptFriendRequest(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := social.Accept(c.Request.Context(), userID.(string), c.Param("userId")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Friend request accepted"})
}

// DeclineFriendRequest clears the pending request.
func DeclineFriendRequest(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := social.Decline(c.Request.Context(), userID.(string), c.Param("userId")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Friend request declined"})
}

// RemoveFriend deletes the mutual edge from both sides.
func RemoveFriend(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := social.Remove(c.Request.Context(), userID.(string), c.Param("userId")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Friend removed"})
}

// ListFriends returns the user's friends and pending requests, resolved to
// full records for the friends screen.
func ListFriends(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"friends":  social.Friends(c.Request.Context(), user),
		"requests": social.PendingRequests(c.Request.Context(), user),
	})
}
