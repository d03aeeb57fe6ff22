package services

import (
	"path/filepath"
	"testing"

	"github.com/imaditya55/RoomMateMatcher/internal/database"
	"github.com/imaditya55/RoomMateMatcher/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points the global database.DB at an in-memory SQLite database
// and clears all tables, so every test starts from an empty state.
func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test DB: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.SavedRoommate{},
		&models.RoommateRequest{},
		&models.Message{},
	); err != nil {
		t.Fatalf("Failed to migrate test DB: %v", err)
	}

	db.Exec("DELETE FROM messages")
	db.Exec("DELETE FROM roommate_requests")
	db.Exec("DELETE FROM saved_roommates")
	db.Exec("DELETE FROM users")

	database.DB = db
}

// setupFileTestDB is setupTestDB with a file-backed database for tests that
// write from multiple goroutines: shared-cache memory SQLite fails concurrent
// writers with a lock error, while a file plus busy timeout makes them wait.
func setupFileTestDB(t *testing.T) {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test DB: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.SavedRoommate{},
		&models.RoommateRequest{},
		&models.Message{},
	); err != nil {
		t.Fatalf("Failed to migrate test DB: %v", err)
	}

	database.DB = db
}

func createUser(t *testing.T, id, name string) models.User {
	t.Helper()
	u := models.User{ID: id, Name: name, Email: id + "@example.com"}
	if err := database.DB.Create(&u).Error; err != nil {
		t.Fatalf("Failed to create user %s: %v", id, err)
	}
	return u
}
