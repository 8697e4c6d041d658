package application

import (
	"context"
	"sync"

	cartdomain "github.com/Apurer/cartsync/internal/domains/cart/domain"
	"github.com/Apurer/cartsync/internal/domains/carts/domain"
	"github.com/Apurer/cartsync/internal/domains/carts/ports"
)

// Service orchestrates the remote cart use cases. Mutations of one user's
// document are serialized so read-modify-write cycles do not interleave.
type Service struct {
	repo ports.Repository

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo, locks: map[string]*sync.Mutex{}}
}

// Get returns the lines of the user's cart.
func (s *Service) Get(ctx context.Context, userID string) ([]cartdomain.CartLine, error) {
	if _, err := domain.NewDocument(userID, nil); err != nil {
		return nil, mapError(err)
	}
	doc, err := s.repo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return doc.Entity.Lines(), nil
}

// Add increments item in the user's cart.
func (s *Service) Add(ctx context.Context, userID string, item cartdomain.Item) ([]cartdomain.CartLine, error) {
	if userID != "" && userID == item.SellerID {
		return nil, ErrSelfPurchase
	}
	return s.mutate(ctx, userID, func(doc *domain.Document) error {
		_, err := doc.Cart.Increment(item)
		return err
	})
}

// SetQuantity overwrites the quantity of an existing line; zero removes it.
func (s *Service) SetQuantity(ctx context.Context, userID, itemID string, quantity int) ([]cartdomain.CartLine, error) {
	return s.mutate(ctx, userID, func(doc *domain.Document) error {
		_, found, err := doc.Cart.SetQuantity(itemID, quantity)
		if err != nil {
			return err
		}
		if !found {
			return ErrLineNotFound
		}
		return nil
	})
}

// Remove deletes the line for itemID. Removing an absent line is not an error.
func (s *Service) Remove(ctx context.Context, userID, itemID string) ([]cartdomain.CartLine, error) {
	return s.mutate(ctx, userID, func(doc *domain.Document) error {
		doc.Cart.Remove(itemID)
		return nil
	})
}

// Clear deletes the user's cart document.
func (s *Service) Clear(ctx context.Context, userID string) error {
	if _, err := domain.NewDocument(userID, nil); err != nil {
		return mapError(err)
	}
	unlock := s.lock(userID)
	defer unlock()
	return s.repo.Delete(ctx, userID)
}

func (s *Service) mutate(ctx context.Context, userID string, apply func(doc *domain.Document) error) ([]cartdomain.CartLine, error) {
	if _, err := domain.NewDocument(userID, nil); err != nil {
		return nil, mapError(err)
	}
	unlock := s.lock(userID)
	defer unlock()

	current, err := s.repo.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	doc := current.Entity
	if err := apply(doc); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, doc)
	if err != nil {
		return nil, err
	}
	return saved.Entity.Lines(), nil
}

func (s *Service) lock(userID string) func() {
	s.mu.Lock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	s.mu.Unlock()
	l.Lock()
	return l.Unlock
}

var _ ports.Service = (*Service)(nil)
