package memory

import (
	"context"
	"sync"

	"github.com/Apurer/cartsync/internal/domains/cart/ports"
)

var _ ports.Credentials = (*Session)(nil)

// Session is an in-memory credential holder.
type Session struct {
	mu     sync.RWMutex
	token  string
	userID string
}

func NewSession() *Session {
	return &Session{}
}

// Login stores credentials for userID.
func (s *Session) Login(_ context.Context, userID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = userID
	s.token = token
	return nil
}

func (s *Session) Token(_ context.Context) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

func (s *Session) UserID(_ context.Context) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

func (s *Session) ClearTokens(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.userID = ""
	return nil
}
