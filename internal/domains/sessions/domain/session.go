package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyUserID = errors.New("user id is required")
	ErrEmptyToken  = errors.New("token is required")
)

// Session binds a bearer token to a user until ExpiresAt.
type Session struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}

func NewSession(token, userID string, expiresAt time.Time) (*Session, error) {
	token = strings.TrimSpace(token)
	userID = strings.TrimSpace(userID)
	if token == "" {
		return nil, ErrEmptyToken
	}
	if userID == "" {
		return nil, ErrEmptyUserID
	}
	return &Session{Token: token, UserID: userID, ExpiresAt: expiresAt}, nil
}

// Expired reports whether the session is no longer valid at now. A zero
// ExpiresAt never expires.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
