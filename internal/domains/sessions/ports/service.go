package ports

import "context"

// Service issues and checks bearer tokens for the cart API.
type Service interface {
	Issue(ctx context.Context, userID string) (string, error)
	Authenticate(ctx context.Context, token string) (string, error)
	Revoke(ctx context.Context, token string) error
}
