package ports

import (
	"context"

	"github.com/Apurer/cartsync/internal/domains/cart/domain"
)

// Service is the cart synchronization contract exposed to the UI (inbound/driving port).
type Service interface {
	Load(ctx context.Context)
	AddToCart(ctx context.Context, item domain.Item) error
	RemoveFromCart(ctx context.Context, itemID string) error
	UpdateQuantity(ctx context.Context, itemID string, quantity int) error
	ClearCart(ctx context.Context) error
	Lines() []domain.CartLine
	TotalItems() int
	TotalPrice() float64
	Mode(ctx context.Context) domain.SessionMode
	Close(ctx context.Context) error
}
