package helper

import (
	"log"
	"sync"
	"time"

	"movie_booking/flow"
)

// SessionStore giữ các flow session đang sống trong bộ nhớ. Session
// không sống qua restart (chủ đích), chỉ cần quét bỏ session bỏ hoang.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*flow.Session
}

var Sessions = NewSessionStore()

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*flow.Session)}
}

func (s *SessionStore) Put(session *flow.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
}

func (s *SessionStore) Get(id string) *flow.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[id]
}

func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep bỏ các session không hoạt động quá maxIdle.
func (s *SessionStore) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, session := range s.sessions {
		if session.Touched().Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		log.Printf("Đã dọn %d booking session bỏ hoang", removed)
	}
	return removed
}
