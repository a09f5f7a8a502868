package service

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// SessionService holds one mutable state slot per session. Index replaces
// the slot wholesale; ask and extract hold the slot lock for the duration
// of the operation, so a rebuild cannot race a running query.
type SessionService struct {
	mu       sync.RWMutex
	sessions map[string]*sessionSlot
}

type sessionSlot struct {
	mu    sync.Mutex
	state *SessionState
}

func NewSessionService() *SessionService {
	return &SessionService{
		sessions: make(map[string]*sessionSlot),
	}
}

// Put stores state under the given session id, creating the slot when the
// id is empty or unknown, and returns the id in use.
func (s *SessionService) Put(sessionID string, state *SessionState) string {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	s.mu.Lock()
	slot, ok := s.sessions[sessionID]
	if !ok {
		slot = &sessionSlot{}
		s.sessions[sessionID] = slot
	}
	s.mu.Unlock()

	slot.mu.Lock()
	slot.state = state
	slot.mu.Unlock()
	return sessionID
}

// With runs fn with the session's state under the slot lock. An unknown
// session id runs fn with a nil state, so callers surface their own
// "index a PDF first" message instead of an error.
func (s *SessionService) With(sessionID string, fn func(state *SessionState) error) error {
	s.mu.RLock()
	slot, ok := s.sessions[sessionID]
	s.mu.RUnlock()

	if !ok {
		return fn(nil)
	}

	slot.mu.Lock()
	defer slot.mu.Unlock()
	return fn(slot.state)
}

// Delete discards a session and its index.
func (s *SessionService) Delete(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return fmt.Errorf("unknown session: %s", sessionID)
	}
	delete(s.sessions, sessionID)
	return nil
}
