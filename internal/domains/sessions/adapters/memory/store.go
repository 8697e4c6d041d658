package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Apurer/cartsync/internal/domains/sessions/domain"
	"github.com/Apurer/cartsync/internal/domains/sessions/ports"
)

// Store is an in-memory session store.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
	now      func() time.Time
}

func NewStore() *Store {
	return &Store{sessions: map[string]domain.Session{}, now: time.Now}
}

// WithClock overrides the time source used by PurgeExpired.
func (s *Store) WithClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

func (s *Store) Save(_ context.Context, session *domain.Session) error {
	s.mu.Lock()
	s.sessions[session.Token] = *session
	s.mu.Unlock()
	return nil
}

func (s *Store) Resolve(_ context.Context, token string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[token]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &session, nil
}

func (s *Store) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
	return nil
}

func (s *Store) PurgeExpired(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	var purged int64
	for token, session := range s.sessions {
		if session.Expired(now) {
			delete(s.sessions, token)
			purged++
		}
	}
	return purged, nil
}

var _ ports.Store = (*Store)(nil)
