package services

import (
	"hash/fnv"
	"sync"
)

// presenceShardCount spreads per-user locking so one user's connect storm
// doesn't serialize every other user's connect/disconnect.
const presenceShardCount = 16

type presenceShard struct {
	mu       sync.RWMutex
	sessions map[string]map[string]struct{} // userId -> set of session handles
}

// PresenceRegistry tracks which socket sessions each user currently has open.
// A user is online iff their session set is non-empty. The registry is
// process-local and volatile: it starts empty and is never persisted, so a
// restart makes everyone offline until they reconnect.
type PresenceRegistry struct {
	shards [presenceShardCount]*presenceShard
}

func NewPresenceRegistry() *PresenceRegistry {
	r := &PresenceRegistry{}
	for i := range r.shards {
		r.shards[i] = &presenceShard{sessions: make(map[string]map[string]struct{})}
	}
	return r
}

func (r *PresenceRegistry) shard(userID string) *presenceShard {
	h := fnv.New32a()
	h.Write([]byte(userID))
	return r.shards[h.Sum32()%presenceShardCount]
}

// Register adds a session handle to the user's set. Returns true when this is
// the user's first live session, i.e. the offline -> online transition.
func (r *PresenceRegistry) Register(userID, sessionID string) bool {
	s := r.shard(userID)
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.sessions[userID]
	if !ok {
		set = make(map[string]struct{})
		s.sessions[userID] = set
	}
	first := len(set) == 0
	set[sessionID] = struct{}{}
	return first
}

// Unregister removes a session handle. Returns true when the user's set
// became empty, i.e. the online -> offline transition. Unknown handles are
// ignored and never report a transition.
func (r *PresenceRegistry) Unregister(userID, sessionID string) bool {
	s := r.shard(userID)
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.sessions[userID]
	if !ok {
		return false
	}
	if _, ok := set[sessionID]; !ok {
		return false
	}
	delete(set, sessionID)
	if len(set) == 0 {
		delete(s.sessions, userID)
		return true
	}
	return false
}

// SessionsFor returns a snapshot of the user's live session handles.
func (r *PresenceRegistry) SessionsFor(userID string) []string {
	s := r.shard(userID)
	s.mu.RLock()
	defer s.mu.RUnlock()

	set := s.sessions[userID]
	handles := make([]string, 0, len(set))
	for id := range set {
		handles = append(handles, id)
	}
	return handles
}

// IsOnline reports whether the user has at least one live session.
func (r *PresenceRegistry) IsOnline(userID string) bool {
	s := r.shard(userID)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions[userID]) > 0
}

// OnlineUsers returns the ids of every user with a live session.
func (r *PresenceRegistry) OnlineUsers() []string {
	users := []string{}
	for _, s := range r.shards {
		s.mu.RLock()
		for userID := range s.sessions {
			users = append(users, userID)
		}
		s.mu.RUnlock()
	}
	return users
}
