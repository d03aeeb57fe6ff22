package handlers

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/imaditya55/RoomMateMatcher/internal/database"
	"github.com/imaditya55/RoomMateMatcher/internal/models"
	"github.com/imaditya55/RoomMateMatcher/internal/services"
	"github.com/imaditya55/RoomMateMatcher/pkg/logger"
)

// Conversation is one row in the chat sidebar: the counterpart, the latest
// message and how many of their messages are still unread.
type Conversation struct {
	User        models.PublicProfile `json:"user"`
	LastMessage *models.Message      `json:"lastMessage"`
	UnreadCount int64                `json:"unreadCount"`
}

// GetConversations returns one entry per accepted roommate request involving
// the current user, most recently active first.
func GetConversations(c *gin.Context) {
	userId := c.MustGet("userId").(string)

	var accepted []models.RoommateRequest
	err := database.DB.Preload("From").Preload("To").
		Where("(from_id = ? OR to_id = ?) AND status = ?", userId, userId, models.RequestAccepted).
		Find(&accepted).Error
	if err != nil {
		respondError(c, err)
		return
	}

	conversations := []Conversation{}
	requestCreated := map[string]time.Time{} // counterpart id -> request age, for the no-message sort fallback

	for _, req := range accepted {
		other := req.From
		if req.FromID == userId {
			other = req.To
		}

		last, err := services.LastMessage(userId, other.ID)
		if err != nil {
			respondError(c, err)
			return
		}

		unread, err := services.UnreadCount(other.ID, userId)
		if err != nil {
			respondError(c, err)
			return
		}

		requestCreated[other.ID] = req.CreatedAt
		conversations = append(conversations, Conversation{
			User:        other.Public(),
			LastMessage: last,
			UnreadCount: unread,
		})
	}

	sort.SliceStable(conversations, func(i, j int) bool {
		ti := requestCreated[conversations[i].User.ID]
		if conversations[i].LastMessage != nil {
			ti = conversations[i].LastMessage.CreatedAt
		}
		tj := requestCreated[conversations[j].User.ID]
		if conversations[j].LastMessage != nil {
			tj = conversations[j].LastMessage.CreatedAt
		}
		return ti.After(tj)
	})

	c.JSON(http.StatusOK, gin.H{"conversations": conversations})
}

// GetChatMessages handles GET /chat/messages/:userId. Fetching history also
// marks the counterpart's messages as read, mirroring what the socket
// mark_read event does for clients with a live connection.
func GetChatMessages(c *gin.Context) {
	me := c.MustGet("userId").(string)
	otherID := c.Param("userId")

	connected, err := services.AreConnected(me, otherID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !connected {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only chat with accepted roommates"})
		return
	}

	messages, err := services.MessageHistory(me, otherID)
	if err != nil {
		respondError(c, err)
		return
	}

	if _, err := services.MarkReadFrom(otherID, me); err != nil {
		logger.Error().Err(err).Str("user_id", me).Msg("Failed to mark messages read")
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// PostChatMessage handles POST /chat/messages/:userId. This is the fallback
// path for clients without a live socket: the message is persisted only, with
// no real-time fan-out; recipients pick it up on their next history fetch.
func PostChatMessage(c *gin.Context) {
	me := c.MustGet("userId").(string)
	otherID := c.Param("userId")

	var input struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message text is required"})
		return
	}

	connected, err := services.AreConnected(me, otherID)
	if err != nil {
		respondError(c, err)
		return
	}
	if !connected {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only chat with accepted roommates"})
		return
	}

	msg, err := services.AppendMessage(me, otherID, input.Text)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msg})
}
