package ports

import (
	"context"

	"github.com/Apurer/cartsync/internal/domains/carts/domain"
	"github.com/Apurer/cartsync/internal/shared/projection"
)

// DocumentProjection is a cart document plus persistence timestamps.
type DocumentProjection = projection.Projection[*domain.Document]

// Repository persists one cart document per user.
type Repository interface {
	// Load returns the stored document, or an empty one when the user has none.
	Load(ctx context.Context, userID string) (*DocumentProjection, error)
	Save(ctx context.Context, doc *domain.Document) (*DocumentProjection, error)
	Delete(ctx context.Context, userID string) error
}
