package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/cartsync/internal/domains/sessions/domain"
	"github.com/Apurer/cartsync/internal/domains/sessions/ports"
)

// DefaultTTL applies when NewService receives a non-positive ttl.
const DefaultTTL = 24 * time.Hour

type Service struct {
	store    ports.Store
	ttl      time.Duration
	now      func() time.Time
	newToken func() string
}

func NewService(store ports.Store, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{store: store, ttl: ttl, now: time.Now, newToken: uuid.NewString}
}

// WithClock overrides the time source for deterministic testing.
func (s *Service) WithClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Issue mints a new token for userID.
func (s *Service) Issue(ctx context.Context, userID string) (string, error) {
	session, err := domain.NewSession(s.newToken(), userID, s.now().Add(s.ttl))
	if err != nil {
		return "", mapError(err)
	}
	if err := s.store.Save(ctx, session); err != nil {
		return "", err
	}
	return session.Token, nil
}

// Authenticate resolves token to its user id. Expired sessions are deleted.
func (s *Service) Authenticate(ctx context.Context, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrUnauthenticated
	}
	session, err := s.store.Resolve(ctx, token)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return "", ErrUnauthenticated
		}
		return "", err
	}
	if session.Expired(s.now()) {
		_ = s.store.Delete(ctx, token)
		return "", ErrUnauthenticated
	}
	return session.UserID, nil
}

func (s *Service) Revoke(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	return s.store.Delete(ctx, strings.TrimSpace(token))
}

var _ ports.Service = (*Service)(nil)
