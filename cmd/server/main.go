package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/imaditya55/RoomMateMatcher/internal/config"
	"github.com/imaditya55/RoomMateMatcher/internal/database"
	"github.com/imaditya55/RoomMateMatcher/internal/handlers"
	"github.com/imaditya55/RoomMateMatcher/internal/middleware"
	"github.com/imaditya55/RoomMateMatcher/internal/models"
	"github.com/imaditya55/RoomMateMatcher/internal/routes"
	"github.com/imaditya55/RoomMateMatcher/pkg/logger"
)

func main() {
	// Load Config & Initialize Logger
	config.LoadConfig()

	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}
	logger.Init(env)

	logger.Info().Str("environment", env).Msg("Starting RoomMateMatcher Backend...")

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect Database + Redis
	database.Connect()
	database.InitRedis()

	logger.Info().Msg("Running database migrations...")
	if err := database.DB.AutoMigrate(
		&models.User{},
		&models.SavedRoommate{},
		&models.RoommateRequest{},
		&models.Message{},
	); err != nil {
		logger.Fatal().Err(err).Msg("Failed to run migrations")
	}
	logger.Info().Msg("Database migrations complete")

	// Setup Router
	r := gin.New()

	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.ErrorHandlerMiddleware())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())

	// Exempt the socket.io handshake/polling from rate limiting
	r.Use(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/socket.io/") {
			c.Next()
			return
		}
		middleware.GeneralRateLimit()(c)
	})

	// Register Routes
	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		routes.RegisterAuthRoutes(auth)

		routes.RegisterUserRoutes(api)
		routes.RegisterChatRoutes(api)
	}

	// Health check with DB and Redis status
	r.GET("/health", func(c *gin.Context) {
		dbStatus := "ok"
		redisStatus := "ok"

		sqlDB, err := database.DB.DB()
		if err != nil || sqlDB.Ping() != nil {
			dbStatus = "error"
		}

		if database.Redis != nil {
			if _, err := database.Redis.Ping(context.Background()).Result(); err != nil {
				redisStatus = "error"
			}
		} else {
			redisStatus = "not configured"
		}

		status := "ok"
		if dbStatus != "ok" || (redisStatus != "ok" && redisStatus != "not configured") {
			status = "degraded"
		}

		c.JSON(200, gin.H{
			"status":  status,
			"message": "RoomMateMatcher API is running",
			"checks": gin.H{
				"database": dbStatus,
				"redis":    redisStatus,
			},
		})
	})

	// Init Socket.io
	socketServer := handlers.InitSocketServer()
	defer socketServer.Close()

	r.GET("/socket.io/*any", handlers.SocketHandler(socketServer))
	r.POST("/socket.io/*any", handlers.SocketHandler(socketServer))

	// Start Server with graceful shutdown
	port := config.AppConfig.Port
	if port == "" {
		port = "5000"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", port).Str("env", env).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited gracefully")
}
