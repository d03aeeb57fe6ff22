package services

import (
	"net/http"
	"strings"
	"testing"

	"github.com/imaditya55/RoomMateMatcher/internal/database"
	"github.com/imaditya55/RoomMateMatcher/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestAppendMessageValidation(t *testing.T) {
	setupTestDB(t)
	createUser(t, "alice", "Alice")
	createUser(t, "bob", "Bob")

	_, err := AppendMessage("alice", "bob", "")
	assert.Equal(t, http.StatusBadRequest, appErrCode(t, err))

	_, err = AppendMessage("alice", "bob", "   \n\t ")
	assert.Equal(t, http.StatusBadRequest, appErrCode(t, err))

	_, err = AppendMessage("alice", "bob", strings.Repeat("x", models.MaxMessageLength+1))
	assert.Equal(t, http.StatusBadRequest, appErrCode(t, err))

	// Nothing was persisted by the rejected sends
	var count int64
	database.DB.Model(&models.Message{}).Count(&count)
	assert.Equal(t, int64(0), count)

	msg, err := AppendMessage("alice", "bob", "  hello  ")
	assert.NoError(t, err)
	assert.Equal(t, "hello", msg.Text, "text is trimmed before storing")
	assert.False(t, msg.Read)
	assert.NotEmpty(t, msg.ID)
}

func TestMessageHistoryOrdering(t *testing.T) {
	setupTestDB(t)
	createUser(t, "alice", "Alice")
	createUser(t, "bob", "Bob")

	AppendMessage("alice", "bob", "A")
	AppendMessage("bob", "alice", "B")
	AppendMessage("alice", "bob", "C")

	history, err := MessageHistory("alice", "bob")
	assert.NoError(t, err)
	assert.Len(t, history, 3)
	assert.Equal(t, "A", history[0].Text)
	assert.Equal(t, "B", history[1].Text)
	assert.Equal(t, "C", history[2].Text)

	// Same history regardless of who asks
	reversed, _ := MessageHistory("bob", "alice")
	assert.Equal(t, history[0].ID, reversed[0].ID)
	assert.Equal(t, history[2].ID, reversed[2].ID)
}

func TestMessageHistoryOnlyThePair(t *testing.T) {
	setupTestDB(t)
	createUser(t, "alice", "Alice")
	createUser(t, "bob", "Bob")
	createUser(t, "carol", "Carol")

	AppendMessage("alice", "bob", "for bob")
	AppendMessage("alice", "carol", "for carol")

	history, _ := MessageHistory("alice", "bob")
	assert.Len(t, history, 1)
	assert.Equal(t, "for bob", history[0].Text)
}

func TestMarkReadFromIdempotent(t *testing.T) {
	setupTestDB(t)
	createUser(t, "alice", "Alice")
	createUser(t, "bob", "Bob")

	AppendMessage("alice", "bob", "one")
	AppendMessage("alice", "bob", "two")
	AppendMessage("bob", "alice", "reply")

	unread, _ := UnreadCount("alice", "bob")
	assert.Equal(t, int64(2), unread)

	affected, err := MarkReadFrom("alice", "bob")
	assert.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	// Second call changes nothing and reports nothing changed
	affected, err = MarkReadFrom("alice", "bob")
	assert.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	unread, _ = UnreadCount("alice", "bob")
	assert.Equal(t, int64(0), unread)

	// Bob's own unread message to Alice is untouched
	unread, _ = UnreadCount("bob", "alice")
	assert.Equal(t, int64(1), unread)
}

func TestLastMessage(t *testing.T) {
	setupTestDB(t)
	createUser(t, "alice", "Alice")
	createUser(t, "bob", "Bob")

	last, err := LastMessage("alice", "bob")
	assert.NoError(t, err)
	assert.Nil(t, last, "empty conversation has no last message")

	AppendMessage("alice", "bob", "first")
	AppendMessage("bob", "alice", "latest")

	last, err = LastMessage("alice", "bob")
	assert.NoError(t, err)
	assert.Equal(t, "latest", last.Text)
}
