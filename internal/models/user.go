package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Preferences holds the lifestyle answers used by the match scorer. Embedded
// into User so the profile form writes a single row.
type Preferences struct {
	Gender    string `json:"gender"`
	SleepTime int    `json:"sleepTime"`
	StudyTime int    `json:"studyTime"`

	Cleanliness int `json:"cleanliness"`
	Noise       int `json:"noise"`

	Smokes bool `json:"smokes"`
	Drinks bool `json:"drinks"`

	OkayWithSmoking  bool `json:"okayWithSmoking"`
	OkayWithDrinking bool `json:"okayWithDrinking"`

	Food        string `json:"food"`
	Personality string `json:"personality"`

	BudgetMin int `json:"budgetMin"`
	BudgetMax int `json:"budgetMax"`

	Location string `json:"location"`
	Guests   bool   `json:"guests"`
}

type User struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name     string `json:"name"`
	Email    string `gorm:"uniqueIndex" json:"email"`
	Password string `json:"-"`

	Preferences Preferences `gorm:"embedded;embeddedPrefix:pref_" json:"preferences"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// SavedRoommate is one entry in a user's saved list. The unique index gives
// the same set semantics as Mongo's $addToSet in the original shortlist.
type SavedRoommate struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	UserID string `gorm:"uniqueIndex:idx_user_roommate" json:"userId"`
	User   User   `gorm:"foreignKey:UserID" json:"-"`

	RoommateID string `gorm:"uniqueIndex:idx_user_roommate" json:"roommateId"`
	Roommate   User   `gorm:"foreignKey:RoommateID" json:"roommate"`
}

func (s *SavedRoommate) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return
}

// PublicProfile is the projection sent to other users (request lists,
// conversations, matches). Never includes email credentials beyond contact.
type PublicProfile struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Preferences Preferences `json:"preferences"`
}

// Public converts a full user row into its shareable projection.
func (u *User) Public() PublicProfile {
	return PublicProfile{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Preferences: u.Preferences,
	}
}
