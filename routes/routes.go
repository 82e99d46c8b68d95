package routes

import (
	"fitcats/controllers"
	"fitcats/websocket"

	"github.com/gin-gonic/gin"
)

// SetupPublic registers the routes reachable without a session.
func SetupPublic(router *gin.Engine) {
	router.POST("/signup", controllers.SignUp)
	router.POST("/login", controllers.Login)
}

// SetupAuthenticated registers the bearer-token protected routes.
func SetupAuthenticated(auth *gin.RouterGroup) {
	auth.POST("/logout", controllers.Logout)
	auth.GET("/session", controllers.GetSession)

	auth.GET("/user/profile", controllers.GetProfile)
	auth.GET("/user/statistics", controllers.GetStatistics)
	auth.GET("/users", controllers.ListUsers)

	auth.GET("/ranks", controllers.GetRanks)
	auth.GET("/ranks/current", controllers.GetCurrentRank)

	auth.POST("/leagues", controllers.CreateLeague)
	auth.GET("/leagues/invites", controllers.GetInvites)
	auth.GET("/leagues/active", controllers.GetActiveLeagues)
	auth.GET("/leagues/completed", controllers.GetCompletedLeagues)
	auth.POST("/leagues/:id/respond", controllers.RespondToInvite)
	auth.GET("/leaderboard/:id", controllers.GetLeaderboard)

	auth.POST("/friends/request/:userId", controllers.SendFriendRequest)
	auth.POST("/friends/accept/:userId", controllers.AcceptFriendRequest)
	auth.POST("/friends/decline/:userId", controllers.DeclineFriendRequest)
	auth.DELETE("/friends/:userId", controllers.RemoveFriend)
	auth.GET("/friends", controllers.ListFriends)

	auth.POST("/steps/observe", controllers.ObserveSteps)

	// WebSocket step/rank event stream
	auth.GET("/ws", websocket.StepStreamHandler)
}
