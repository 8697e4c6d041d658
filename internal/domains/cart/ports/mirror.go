package ports

import (
	"context"

	"github.com/Apurer/cartsync/internal/domains/cart/domain"
)

// MirrorKey is the storage key of the guest cart mirror.
const MirrorKey = "cart"

// Mirror is device-local guest storage for the cart, encoded as a JSON array
// of lines under MirrorKey.
type Mirror interface {
	// Load returns the stored lines, or nil when nothing was stored. Undecodable
	// contents are reported as an error.
	Load(ctx context.Context) ([]domain.CartLine, error)
	Save(ctx context.Context, lines []domain.CartLine) error
	Clear(ctx context.Context) error
}
