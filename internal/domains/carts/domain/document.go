package domain

import (
	"errors"
	"strings"

	cartdomain "github.com/Apurer/cartsync/internal/domains/cart/domain"
)

var ErrEmptyUserID = errors.New("user id is required")

// Document is the server-side cart of one user. Quantity rules are shared
// with the client engine through cartdomain.Cart.
type Document struct {
	UserID string
	Cart   *cartdomain.Cart
}

// NewDocument validates the owner and normalizes lines.
func NewDocument(userID string, lines []cartdomain.CartLine) (*Document, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrEmptyUserID
	}
	return &Document{UserID: userID, Cart: cartdomain.NewCart(lines)}, nil
}

// Lines returns a copy of the document lines.
func (d *Document) Lines() []cartdomain.CartLine {
	if d == nil || d.Cart == nil {
		return []cartdomain.CartLine{}
	}
	return d.Cart.Lines()
}
