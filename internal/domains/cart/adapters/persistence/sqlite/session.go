package sqlite

import (
	"context"
	"strings"

	"github.com/Apurer/cartsync/internal/domains/cart/ports"
)

const (
	tokenKey  = "authToken"
	userIDKey = "userId"
)

var _ ports.Credentials = (*Session)(nil)

// Session keeps the bearer token and user id next to the cart mirror.
type Session struct {
	store *Store
}

// Login stores credentials for userID.
func (s *Session) Login(ctx context.Context, userID, token string) error {
	if err := s.store.Put(ctx, tokenKey, strings.TrimSpace(token)); err != nil {
		return err
	}
	return s.store.Put(ctx, userIDKey, strings.TrimSpace(userID))
}

func (s *Session) Token(ctx context.Context) (string, bool) {
	token, ok, err := s.store.Get(ctx, tokenKey)
	if err != nil || !ok || token == "" {
		return "", false
	}
	return token, true
}

func (s *Session) UserID(ctx context.Context) string {
	userID, _, err := s.store.Get(ctx, userIDKey)
	if err != nil {
		return ""
	}
	return userID
}

func (s *Session) ClearTokens(ctx context.Context) error {
	return s.store.Delete(ctx, tokenKey, userIDKey)
}
