package application

import (
	"errors"
	"fmt"

	cartdomain "github.com/Apurer/cartsync/internal/domains/cart/domain"
	"github.com/Apurer/cartsync/internal/domains/carts/domain"
)

var (
	// ErrInvalidInput signals the request violated a cart invariant.
	ErrInvalidInput = errors.New("invalid cart input")
	// ErrSelfPurchase rejects adding a listing owned by the caller.
	ErrSelfPurchase = errors.New("cannot add your own listing to the cart")
	// ErrLineNotFound is returned when updating an item that is not in the cart.
	ErrLineNotFound = errors.New("item not in cart")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyUserID) ||
		errors.Is(err, cartdomain.ErrEmptyItemID) ||
		errors.Is(err, cartdomain.ErrNegativePrice) ||
		errors.Is(err, cartdomain.ErrInvalidQuantity) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
