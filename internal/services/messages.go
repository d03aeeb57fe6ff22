package services

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/imaditya55/RoomMateMatcher/internal/database"
	"github.com/imaditya55/RoomMateMatcher/internal/models"
	apperrors "github.com/imaditya55/RoomMateMatcher/pkg/errors"
	"gorm.io/gorm"
)

// AppendMessage persists a new message with read=false. It validates the
// text only; connection authorization is the caller's job (socket gateway or
// REST handler), checked before the append.
func AppendMessage(fromID, toID, text string) (*models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.BadRequest("Message text is required")
	}
	if utf8.RuneCountInString(text) > models.MaxMessageLength {
		return nil, apperrors.BadRequest("Message text is too long")
	}

	msg := models.Message{
		FromID: fromID,
		ToID:   toID,
		Text:   text,
	}

	if err := database.DB.Create(&msg).Error; err != nil {
		return nil, err
	}

	return &msg, nil
}

// MessageHistory returns every message between the pair, oldest first. The id
// tiebreak keeps the order stable when timestamps collide.
func MessageHistory(userA, userB string) ([]models.Message, error) {
	messages := []models.Message{}
	err := database.DB.Where(
		"(from_id = ? AND to_id = ?) OR (from_id = ? AND to_id = ?)",
		userA, userB, userB, userA,
	).Order("created_at asc, id asc").Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkReadFrom flips every unread message from sender to recipient to read.
// Idempotent; returns how many rows actually changed so callers can skip the
// read-receipt push when nothing was unread.
func MarkReadFrom(senderID, recipientID string) (int64, error) {
	res := database.DB.Model(&models.Message{}).
		Where("from_id = ? AND to_id = ? AND read = ?", senderID, recipientID, false).
		Update("read", true)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// UnreadCount counts unread messages from sender to recipient.
func UnreadCount(senderID, recipientID string) (int64, error) {
	var count int64
	err := database.DB.Model(&models.Message{}).
		Where("from_id = ? AND to_id = ? AND read = ?", senderID, recipientID, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// LastMessage returns the most recent message between the pair, or nil when
// the conversation is empty.
func LastMessage(userA, userB string) (*models.Message, error) {
	var msg models.Message
	err := database.DB.Where(
		"(from_id = ? AND to_id = ?) OR (from_id = ? AND to_id = ?)",
		userA, userB, userB, userA,
	).Order("created_at desc, id desc").First(&msg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &msg, nil
}
