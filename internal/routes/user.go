package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/imaditya55/RoomMateMatcher/internal/handlers"
	"github.com/imaditya55/RoomMateMatcher/internal/middleware"
)

func RegisterUserRoutes(r gin.IRouter) {
	user := r.Group("/user")
	user.Use(middleware.AuthMiddleware())
	{
		user.GET("/profile", handlers.GetProfile)
		user.PUT("/preferences", handlers.UpdatePreferences)
		user.GET("/matches", handlers.GetMatches)

		user.GET("/saved", handlers.GetSavedRoommates)
		user.POST("/saved/:roommateId", handlers.SaveRoommate)
		user.DELETE("/saved/:roommateId", handlers.UnsaveRoommate)

		user.POST("/request/:userId", handlers.SendRoommateRequest)
		user.GET("/requests", handlers.ListRoommateRequests)
		user.PUT("/request/:id/accept", handlers.AcceptRoommateRequest)
		user.PUT("/request/:id/reject", handlers.RejectRoommateRequest)
		user.DELETE("/request/:id/cancel", handlers.CancelRoommateRequest)
	}
}
