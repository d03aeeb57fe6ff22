package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/imaditya55/RoomMateMatcher/internal/config"
	"github.com/imaditya55/RoomMateMatcher/internal/database"
	"github.com/imaditya55/RoomMateMatcher/internal/models"
	"github.com/imaditya55/RoomMateMatcher/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points the global database.DB at an in-memory SQLite database
// and resets every table and the gateway state.
func setupTestDB(t *testing.T) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	config.AppConfig = &config.Config{JWTSecret: "test-secret"}

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
	resetGateway()
}

// resetGateway clears the gateway globals so session state from one test
// never leaks into the next.
func resetGateway() {
	Presence = services.NewPresenceRegistry()

	sessionsMu.Lock()
	sessions = make(map[string]liveSession)
	sessionsMu.Unlock()

	lastTypingMu.Lock()
	lastTypingEmit = make(map[string]time.Time)
	lastTypingMu.Unlock()
}

func createUser(t *testing.T, id, name string) models.User {
	t.Helper()
	u := models.User{ID: id, Name: name, Email: id + "@example.com"}
	if err := database.DB.Create(&u).Error; err != nil {
		t.Fatalf("Failed to create user %s: %v", id, err)
	}
	return u
}

// connectPair creates an accepted roommate request between the two users.
func connectPair(t *testing.T, a, b string) {
	t.Helper()
	req, err := services.SendRequest(a, b)
	if err != nil {
		t.Fatalf("Failed to send request %s -> %s: %v", a, b, err)
	}
	if _, err := services.RespondToRequest(req.ID, b, true); err != nil {
		t.Fatalf("Failed to accept request: %v", err)
	}
}

type emitted struct {
	event string
	data  interface{}
}

// fakeConn stands in for a socket.io connection and records everything
// emitted to it.
type fakeConn struct {
	id string

	mu     sync.Mutex
	events []emitted
}

func newFakeConn(id string) *fakeConn {
	return &fakeConn{id: id}
}

func (f *fakeConn) ID() string { return f.id }

func (f *fakeConn) Emit(event string, args ...interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var data interface{}
	if len(args) > 0 {
		data = args[0]
	}
	f.events = append(f.events, emitted{event: event, data: data})
}

// received returns the payloads of every recorded emit for one event.
func (f *fakeConn) received(event string) []interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []interface{}
	for _, e := range f.events {
		if e.event == event {
			out = append(out, e.data)
		}
	}
	return out
}

// testContext builds a gin context with an authenticated user and an optional
// JSON body, returning the recorder to inspect the response.
func testContext(t *testing.T, userID string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	c.Request = httptest.NewRequest(http.MethodPost, "/", reader)
	c.Request.Header.Set("Content-Type", "application/json")

	if userID != "" {
		c.Set("userId", userID)
	}

	return c, w
}

// decodeBody unmarshals the recorded JSON response.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("Failed to decode response %q: %v", w.Body.String(), err)
	}
	return out
}
