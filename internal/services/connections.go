package services

import (
	"errors"
	"fmt"

	"github.com/imaditya55/RoomMateMatcher/internal/database"
	"github.com/imaditya55/RoomMateMatcher/internal/models"
	apperrors "github.com/imaditya55/RoomMateMatcher/pkg/errors"
	"gorm.io/gorm"
)

// RequestList partitions a user's roommate requests by direction.
type RequestList struct {
	Incoming []models.RoommateRequest `json:"incoming"`
	Outgoing []models.RoommateRequest `json:"outgoing"`
}

// SendRequest creates a pending roommate request from one user to another.
// On a duplicate (either direction) it returns the pre-existing request
// together with a Conflict error so callers can surface its status.
func SendRequest(fromID, toID string) (*models.RoommateRequest, error) {
	if fromID == toID {
		return nil, apperrors.BadRequest("You can't send a request to yourself")
	}

	var target models.User
	if err := database.DB.Select("id").First(&target, "id = ?", toID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, err
	}

	req := models.RoommateRequest{
		FromID: fromID,
		ToID:   toID,
		Status: models.RequestPending,
	}

	pairKey := models.PairKey(fromID, toID)

	var existing models.RoommateRequest
	err := database.DB.Where("pair_key = ?", pairKey).First(&existing).Error
	if err == nil {
		return &existing, duplicateRequestError(&existing)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := database.DB.Create(&req).Error; err != nil {
		// A concurrent create can slip past the read above; the unique
		// pair_key index rejects it here. Re-read so the loser still gets
		// the winning request in the conflict payload.
		if dbErr := database.DB.Where("pair_key = ?", pairKey).First(&existing).Error; dbErr == nil {
			return &existing, duplicateRequestError(&existing)
		}
		return nil, err
	}

	return &req, nil
}

func duplicateRequestError(existing *models.RoommateRequest) error {
	return apperrors.Conflict(fmt.Sprintf("A request already exists (%s)", existing.Status))
}

// RespondToRequest accepts or rejects a pending request. Only the recipient
// may respond, and only once; accepted/rejected are terminal states.
func RespondToRequest(requestID, actingUserID string, accept bool) (*models.RoommateRequest, error) {
	var req models.RoommateRequest
	if err := database.DB.First(&req, "id = ?", requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Request not found")
		}
		return nil, err
	}

	if req.ToID != actingUserID {
		return nil, apperrors.Forbidden("Not authorized")
	}

	if req.Status != models.RequestPending {
		return nil, apperrors.Conflict(fmt.Sprintf("Request already %s", req.Status))
	}

	status := models.RequestAccepted
	if !accept {
		status = models.RequestRejected
	}

	// Guard the transition at the database too, so two racing responses
	// can't both observe pending.
	res := database.DB.Model(&models.RoommateRequest{}).
		Where("id = ? AND status = ?", requestID, models.RequestPending).
		Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.Conflict("Request already responded to")
	}

	req.Status = status
	return &req, nil
}

// CancelRequest deletes a pending request. Only the sender may cancel, and
// only while the request is still pending.
func CancelRequest(requestID, actingUserID string) error {
	var req models.RoommateRequest
	if err := database.DB.First(&req, "id = ?", requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Request not found")
		}
		return err
	}

	if req.FromID != actingUserID {
		return apperrors.Forbidden("Not authorized")
	}

	if req.Status != models.RequestPending {
		return apperrors.Conflict(fmt.Sprintf("Cannot cancel a request that is already %s", req.Status))
	}

	return database.DB.Delete(&models.RoommateRequest{}, "id = ?", requestID).Error
}

// AreConnected reports whether an accepted request exists between the pair,
// in either direction. Every chat send is authorized through this check.
func AreConnected(userA, userB string) (bool, error) {
	var count int64
	err := database.DB.Model(&models.RoommateRequest{}).
		Where("pair_key = ? AND status = ?", models.PairKey(userA, userB), models.RequestAccepted).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListRequestsForUser returns all requests involving the user, partitioned
// into incoming and outgoing, newest first, counterpart profile included.
func ListRequestsForUser(userID string) (*RequestList, error) {
	list := &RequestList{
		Incoming: []models.RoommateRequest{},
		Outgoing: []models.RoommateRequest{},
	}

	if err := database.DB.Preload("From").
		Where("to_id = ?", userID).
		Order("created_at desc").
		Find(&list.Incoming).Error; err != nil {
		return nil, err
	}

	if err := database.DB.Preload("To").
		Where("from_id = ?", userID).
		Order("created_at desc").
		Find(&list.Outgoing).Error; err != nil {
		return nil, err
	}

	return list, nil
}
