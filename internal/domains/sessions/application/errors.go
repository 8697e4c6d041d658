package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/cartsync/internal/domains/sessions/domain"
)

var (
	ErrInvalidInput = errors.New("invalid session input")
	// ErrUnauthenticated covers unknown, revoked, and expired tokens alike.
	ErrUnauthenticated = errors.New("invalid token")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyUserID) || errors.Is(err, domain.ErrEmptyToken) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
