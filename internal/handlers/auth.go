package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/imaditya55/RoomMateMatcher/internal/database"
	"github.com/imaditya55/RoomMateMatcher/internal/models"
	"github.com/imaditya55/RoomMateMatcher/pkg/logger"
	"github.com/imaditya55/RoomMateMatcher/pkg/utils"
	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashedPassword),
	}

	if result := database.DB.Create(&user); result.Error != nil {
		var existing models.User
		if err := database.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists. Please sign in instead."})
			return
		}

		logger.Warn().Err(result.Error).Str("email", input.Email).Msg("Registration failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	logger.Info().Str("user_id", user.ID).Msg("User registered successfully")

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  user,
	})
}

func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if result := database.DB.Where("email = ?", input.Email).First(&user); result.Error != nil {
		logger.Warn().Str("email", input.Email).Msg("Login failed: user not found")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		logger.Warn().Str("email", input.Email).Msg("Login failed: invalid password")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	logger.Info().Str("user_id", user.ID).Msg("User logged in")

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// Logout invalidates the token server-side by adding its jti to the Redis
// blacklist for the remainder of the token's lifetime.
func Logout(c *gin.Context) {
	claimsInterface, exists := c.Get("claims")
	if !exists {
		c.JSON(http.StatusOK, gin.H{"message": "Already logged out"})
		return
	}

	claims, ok := claimsInterface.(*utils.Claims)
	if !ok || claims == nil {
		c.JSON(http.StatusOK, gin.H{"message": "Already logged out"})
		return
	}

	jti := claims.GetJTI()
	if jti == "" || claims.ExpiresAt == nil {
		c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
		return
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
		return
	}

	if err := database.BlacklistToken(jti, ttl); err != nil {
		// Fail gracefully: the token still expires on its own
		logger.Error().Err(err).Str("jti", jti).Msg("Failed to blacklist token")
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}
