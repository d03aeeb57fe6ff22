package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxMessageLength bounds message text, matching the client-side input limit.
const MaxMessageLength = 2000

// Message is one direct message between two connected users. Immutable after
// creation except for the read flag, which only ever flips false -> true.
type Message struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`

	FromID string `gorm:"index" json:"from"`
	From   User   `gorm:"foreignKey:FromID" json:"-"`

	ToID string `gorm:"index" json:"to"`
	To   User   `gorm:"foreignKey:ToID" json:"-"`

	Text string `gorm:"type:text" json:"text"`
	Read bool   `gorm:"default:false" json:"read"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return
}
