package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps sessions in process. Sessions are lost on restart.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]time.Time
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]time.Time), now: time.Now}
}

func (s *MemoryStore) Create(_ context.Context, ttl time.Duration) (string, error) {
	token := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweep()
	s.sessions[token] = s.now().Add(ttl)
	return token, nil
}

func (s *MemoryStore) Valid(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.sessions[token]
	if !ok {
		return false, nil
	}
	if !s.now().Before(exp) {
		delete(s.sessions, token)
		return false, nil
	}
	return true, nil
}

func (s *MemoryStore) Close() error {
	return nil
}

// sweep drops expired sessions. Callers hold mu.
func (s *MemoryStore) sweep() {
	now := s.now()
	for token, exp := range s.sessions {
		if !now.Before(exp) {
			delete(s.sessions, token)
		}
	}
}
