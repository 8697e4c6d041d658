package ports

import (
	"context"
	"errors"

	"github.com/Apurer/cartsync/internal/domains/sessions/domain"
)

var ErrNotFound = errors.New("session not found")

// Store abstracts session/token persistence.
type Store interface {
	Save(ctx context.Context, session *domain.Session) error
	// Resolve returns ErrNotFound for unknown tokens.
	Resolve(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
	PurgeExpired(ctx context.Context) (int64, error)
}
