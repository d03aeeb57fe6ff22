package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/imaditya55/RoomMateMatcher/pkg/errors"
	"github.com/imaditya55/RoomMateMatcher/pkg/logger"
)

// respondError maps service errors onto HTTP responses. AppErrors carry their
// own status; anything else is an internal failure that must not leak.
func respondError(c *gin.Context, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}

	logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled service error")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
}
