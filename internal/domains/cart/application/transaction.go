package application

import (
	"context"

	"github.com/Apurer/cartsync/internal/domains/cart/domain"
	"github.com/Apurer/cartsync/internal/domains/cart/ports"
)

// transaction is one optimistic cart mutation: stage applies the change and
// captures what is needed to undo it, remote reconciles with the service and
// rollback reverts the staged change when the service refuses it.
type transaction struct {
	verb   string
	itemID string

	stage    func(cart *domain.Cart) error
	rollback func(cart *domain.Cart) rollbackOutcome
	remote   func(ctx context.Context) (*ports.Result, error)
}

// rollbackOutcome tells the engine whether the undo was exact or whether the
// cart must be re-fetched because the captured state no longer applies.
type rollbackOutcome int

const (
	rolledBack rollbackOutcome = iota
	needsRefetch
)

func addTransaction(item domain.Item, remote ports.RemoteCart) *transaction {
	var inserted bool
	return &transaction{
		verb:   "add",
		itemID: item.ID,
		stage: func(cart *domain.Cart) error {
			var err error
			inserted, err = cart.Increment(item)
			return err
		},
		rollback: func(cart *domain.Cart) rollbackOutcome {
			if inserted {
				cart.Remove(item.ID)
			} else {
				cart.Decrement(item.ID)
			}
			return rolledBack
		},
		remote: func(ctx context.Context) (*ports.Result, error) {
			return remote.AddItem(ctx, item)
		},
	}
}

func removeTransaction(itemID string, remote ports.RemoteCart) *transaction {
	var (
		removed domain.CartLine
		found   bool
	)
	return &transaction{
		verb:   "remove",
		itemID: itemID,
		stage: func(cart *domain.Cart) error {
			removed, found = cart.Remove(itemID)
			return nil
		},
		rollback: func(cart *domain.Cart) rollbackOutcome {
			if found {
				cart.Restore(removed)
			}
			return rolledBack
		},
		remote: func(ctx context.Context) (*ports.Result, error) {
			return remote.RemoveItem(ctx, itemID)
		},
	}
}

func updateTransaction(itemID string, quantity int, remote ports.RemoteCart) *transaction {
	var (
		previous int
		found    bool
	)
	return &transaction{
		verb:   "update",
		itemID: itemID,
		stage: func(cart *domain.Cart) error {
			var err error
			previous, found, err = cart.SetQuantity(itemID, quantity)
			return err
		},
		rollback: func(cart *domain.Cart) rollbackOutcome {
			if !found {
				return needsRefetch
			}
			if _, exists := cart.Find(itemID); !exists {
				return needsRefetch
			}
			_, _, _ = cart.SetQuantity(itemID, previous)
			return rolledBack
		},
		remote: func(ctx context.Context) (*ports.Result, error) {
			return remote.UpdateItemQuantity(ctx, itemID, quantity)
		},
	}
}
