package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/cartsync/internal/domains/cart/domain"
)

// ErrSelfPurchase rejects adding a listing owned by the signed-in user.
var ErrSelfPurchase = errors.New("cannot add your own listing to the cart")

// ErrInvalidInput signals the request violated a cart invariant.
var ErrInvalidInput = errors.New("invalid cart input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyItemID) ||
		errors.Is(err, domain.ErrNegativePrice) ||
		errors.Is(err, domain.ErrInvalidQuantity) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
