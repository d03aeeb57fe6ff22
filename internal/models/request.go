package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RequestStatus represents the status of a roommate request
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
)

// RoommateRequest is the bilateral handshake gating who may chat with whom.
// Created pending by the sender; the recipient accepts or rejects exactly
// once; the sender may delete it while still pending.
type RoommateRequest struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	FromID string `gorm:"index" json:"fromId"`
	From   User   `gorm:"foreignKey:FromID" json:"from"`

	ToID string `gorm:"index" json:"toId"`
	To   User   `gorm:"foreignKey:ToID" json:"to"`

	// Direction-independent key (smaller id | larger id). The unique index
	// makes the "at most one request per pair" invariant hold under
	// concurrent creates instead of relying on the check-then-create read.
	PairKey string `gorm:"uniqueIndex" json:"-"`

	Status RequestStatus `gorm:"type:text;default:'pending'" json:"status"`
}

func (r *RoommateRequest) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.PairKey == "" {
		r.PairKey = PairKey(r.FromID, r.ToID)
	}
	return
}

// PairKey normalizes two user ids into a direction-independent key.
func PairKey(a, b string) string {
	if a < b {
		return a + "|" + b
	}
	return b + "|" + a
}
