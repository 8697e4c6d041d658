package ports

import (
	"context"

	"github.com/Apurer/cartsync/internal/domains/cart/domain"
)

// Result is the answer of a remote cart mutation. When HasItems is false the
// service omitted the cart contents and the caller must re-fetch.
type Result struct {
	Items    []domain.CartLine
	HasItems bool
}

// ResultWithItems builds a Result carrying the authoritative lines.
func ResultWithItems(items []domain.CartLine) *Result {
	return &Result{Items: items, HasItems: true}
}

// RemoteCart is the authenticated, per-user cart document held by the
// marketplace backend (outbound/driven port).
type RemoteCart interface {
	FetchCart(ctx context.Context) ([]domain.CartLine, error)
	AddItem(ctx context.Context, item domain.Item) (*Result, error)
	UpdateItemQuantity(ctx context.Context, itemID string, quantity int) (*Result, error)
	RemoveItem(ctx context.Context, itemID string) (*Result, error)
	Clear(ctx context.Context) error
}
