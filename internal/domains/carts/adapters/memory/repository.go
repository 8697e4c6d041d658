package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	cartdomain "github.com/Apurer/cartsync/internal/domains/cart/domain"
	"github.com/Apurer/cartsync/internal/domains/carts/domain"
	"github.com/Apurer/cartsync/internal/domains/carts/ports"
	"github.com/Apurer/cartsync/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

type storedDocument struct {
	lines []cartdomain.CartLine
	meta  projection.Metadata
}

// Repository keeps cart documents in memory for development and tests.
type Repository struct {
	mu   sync.RWMutex
	docs map[string]storedDocument
	now  func() time.Time
}

func NewRepository() *Repository {
	return &Repository{docs: map[string]storedDocument{}, now: time.Now}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

func (r *Repository) Load(_ context.Context, userID string) (*ports.DocumentProjection, error) {
	r.mu.RLock()
	stored, ok := r.docs[strings.TrimSpace(userID)]
	r.mu.RUnlock()

	doc, err := domain.NewDocument(userID, stored.lines)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &ports.DocumentProjection{Entity: doc}, nil
	}
	return &ports.DocumentProjection{Entity: doc, Metadata: stored.meta}, nil
}

func (r *Repository) Save(_ context.Context, doc *domain.Document) (*ports.DocumentProjection, error) {
	clone, err := domain.NewDocument(doc.UserID, doc.Lines())
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.docs[clone.UserID]
	stored.meta.Stamp(r.now())
	stored.lines = clone.Lines()
	r.docs[clone.UserID] = stored

	return &ports.DocumentProjection{Entity: clone, Metadata: stored.meta}, nil
}

func (r *Repository) Delete(_ context.Context, userID string) error {
	r.mu.Lock()
	delete(r.docs, strings.TrimSpace(userID))
	r.mu.Unlock()
	return nil
}
