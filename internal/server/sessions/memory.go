package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/filekeeper/internal/server/models"
)

// MemoryStore is a process-local session store. The clock is injected so
// expiry can be tested without sleeping.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryStore returns an in-memory store with the given TTL. A nil now
// falls back to time.Now; a non-positive ttl falls back to DefaultTTL.
func NewMemoryStore(ttl time.Duration, now func() time.Time) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{
		sessions: make(map[string]models.Session),
		ttl:      ttl,
		now:      now,
	}
}

func (s *MemoryStore) Create(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = models.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: s.now().Add(s.ttl),
	}
	return token, nil
}

func (s *MemoryStore) Resolve(ctx context.Context, token string) (string, error) {
	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return "", nil
	}
	if !s.now().Before(sess.ExpiresAt) {
		// Expired entries are dropped lazily on lookup.
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return "", nil
	}
	return sess.UserID, nil
}

func (s *MemoryStore) Revoke(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error { return nil }
