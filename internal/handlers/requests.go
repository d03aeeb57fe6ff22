package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/imaditya55/RoomMateMatcher/internal/services"
	apperrors "github.com/imaditya55/RoomMateMatcher/pkg/errors"
)

// SendRoommateRequest handles POST /user/request/:userId
func SendRoommateRequest(c *gin.Context) {
	userId := c.MustGet("userId").(string)
	targetID := c.Param("userId")

	req, err := services.SendRequest(userId, targetID)
	if err != nil {
		// A duplicate still returns the existing request so the client can
		// show its status instead of a bare error.
		if appErr, ok := err.(*apperrors.AppError); ok && appErr.Code == http.StatusConflict && req != nil {
			c.JSON(appErr.Code, gin.H{"error": appErr.Message, "request": req})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request sent", "request": req})
}

// ListRoommateRequests handles GET /user/requests
func ListRoommateRequests(c *gin.Context) {
	userId := c.MustGet("userId").(string)

	list, err := services.ListRequestsForUser(userId)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"incoming": list.Incoming,
		"outgoing": list.Outgoing,
	})
}

// AcceptRoommateRequest handles PUT /user/request/:id/accept
func AcceptRoommateRequest(c *gin.Context) {
	userId := c.MustGet("userId").(string)

	req, err := services.RespondToRequest(c.Param("id"), userId, true)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request accepted", "request": req})
}

// RejectRoommateRequest handles PUT /user/request/:id/reject
func RejectRoommateRequest(c *gin.Context) {
	userId := c.MustGet("userId").(string)

	req, err := services.RespondToRequest(c.Param("id"), userId, false)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request rejected", "request": req})
}

// CancelRoommateRequest handles DELETE /user/request/:id/cancel
func CancelRoommateRequest(c *gin.Context) {
	userId := c.MustGet("userId").(string)

	if err := services.CancelRequest(c.Param("id"), userId); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request cancelled"})
}
