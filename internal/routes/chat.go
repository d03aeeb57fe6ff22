package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/imaditya55/RoomMateMatcher/internal/handlers"
	"github.com/imaditya55/RoomMateMatcher/internal/middleware"
)

func RegisterChatRoutes(r gin.IRouter) {
	chat := r.Group("/chat")
	chat.Use(middleware.AuthMiddleware(), middleware.ChatRateLimit())
	{
		chat.GET("/conversations", handlers.GetConversations)
		chat.GET("/messages/:userId", handlers.GetChatMessages)
		chat.POST("/messages/:userId", handlers.PostChatMessage)
	}
}
