package ports

import (
	"context"

	cartdomain "github.com/Apurer/cartsync/internal/domains/cart/domain"
)

// Service exposes the remote cart use cases to the HTTP layer.
type Service interface {
	Get(ctx context.Context, userID string) ([]cartdomain.CartLine, error)
	Add(ctx context.Context, userID string, item cartdomain.Item) ([]cartdomain.CartLine, error)
	SetQuantity(ctx context.Context, userID, itemID string, quantity int) ([]cartdomain.CartLine, error)
	Remove(ctx context.Context, userID, itemID string) ([]cartdomain.CartLine, error)
	Clear(ctx context.Context, userID string) error
}
