package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/imaditya55/RoomMateMatcher/internal/handlers"
	"github.com/imaditya55/RoomMateMatcher/internal/middleware"
)

func RegisterAuthRoutes(r gin.IRouter) {
	r.POST("/register", handlers.Register)
	r.POST("/login", handlers.Login)
	r.POST("/logout", middleware.AuthMiddleware(), handlers.Logout)
}
