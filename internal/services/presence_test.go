package services

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPresenceTransitions(t *testing.T) {
	reg := NewPresenceRegistry()

	// Opening three sessions yields exactly one online transition
	assert.True(t, reg.Register("alice", "s1"))
	assert.False(t, reg.Register("alice", "s2"))
	assert.False(t, reg.Register("alice", "s3"))

	assert.True(t, reg.IsOnline("alice"))
	assert.Len(t, reg.SessionsFor("alice"), 3)

	// Closing two of three produces no offline transition
	assert.False(t, reg.Unregister("alice", "s1"))
	assert.False(t, reg.Unregister("alice", "s2"))
	assert.True(t, reg.IsOnline("alice"))

	// Closing the last one does
	assert.True(t, reg.Unregister("alice", "s3"))
	assert.False(t, reg.IsOnline("alice"))
	assert.Empty(t, reg.SessionsFor("alice"))
}

func TestPresenceUnknownUnregister(t *testing.T) {
	reg := NewPresenceRegistry()

	assert.False(t, reg.Unregister("ghost", "s1"))

	reg.Register("alice", "s1")
	assert.False(t, reg.Unregister("alice", "not-a-session"))
	assert.True(t, reg.IsOnline("alice"))
}

func TestPresenceOnlineUsers(t *testing.T) {
	reg := NewPresenceRegistry()

	reg.Register("alice", "a1")
	reg.Register("bob", "b1")
	reg.Register("bob", "b2")

	online := reg.OnlineUsers()
	assert.ElementsMatch(t, []string{"alice", "bob"}, online)

	reg.Unregister("bob", "b1")
	reg.Unregister("bob", "b2")
	assert.ElementsMatch(t, []string{"alice"}, reg.OnlineUsers())
}

func TestPresenceConcurrentSessions(t *testing.T) {
	reg := NewPresenceRegistry()

	const sessions = 100
	var firsts, lasts int64
	var wg sync.WaitGroup

	// A storm of concurrent connects for one user must report the online
	// transition exactly once and lose no handles.
	for i := 0; i < sessions; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if reg.Register("alice", fmt.Sprintf("s%d", n)) {
				atomic.AddInt64(&firsts, 1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(1), firsts)
	assert.Len(t, reg.SessionsFor("alice"), sessions)

	// And the concurrent disconnects report offline exactly once
	for i := 0; i < sessions; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if reg.Unregister("alice", fmt.Sprintf("s%d", n)) {
				atomic.AddInt64(&lasts, 1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(1), lasts)
	assert.False(t, reg.IsOnline("alice"))
}

func TestPresenceConcurrentManyUsers(t *testing.T) {
	reg := NewPresenceRegistry()

	const users = 50
	var wg sync.WaitGroup

	for i := 0; i < users; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			userID := fmt.Sprintf("user%d", n)
			reg.Register(userID, "a")
			reg.Register(userID, "b")
			reg.Unregister(userID, "a")
		}(i)
	}
	wg.Wait()

	assert.Len(t, reg.OnlineUsers(), users)
	for i := 0; i < users; i++ {
		userID := fmt.Sprintf("user%d", i)
		assert.Equal(t, []string{"b"}, reg.SessionsFor(userID))
	}
}
