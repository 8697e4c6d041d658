package ports

import "context"

// Session exposes the credentials of the current user.
type Session interface {
	// Token returns the bearer token and whether one is stored.
	Token(ctx context.Context) (string, bool)
	// UserID identifies the signed-in user, or "" for guests.
	UserID(ctx context.Context) string
	// ClearTokens forgets the stored credentials.
	ClearTokens(ctx context.Context) error
}

// Credentials is a Session that can also record a successful login.
type Credentials interface {
	Session
	Login(ctx context.Context, userID, token string) error
}
