package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Apurer/cartsync/internal/domains/cart/domain"
	"github.com/Apurer/cartsync/internal/domains/cart/ports"
)

var _ ports.Mirror = (*Mirror)(nil)

// Mirror persists the guest cart as JSON under ports.MirrorKey.
type Mirror struct {
	store *Store
}

func (m *Mirror) Load(ctx context.Context) ([]domain.CartLine, error) {
	raw, ok, err := m.store.Get(ctx, ports.MirrorKey)
	if err != nil || !ok {
		return nil, err
	}
	var lines []domain.CartLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return nil, fmt.Errorf("decode cart mirror: %w", err)
	}
	return lines, nil
}

func (m *Mirror) Save(ctx context.Context, lines []domain.CartLine) error {
	if lines == nil {
		lines = []domain.CartLine{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return m.store.Put(ctx, ports.MirrorKey, string(raw))
}

func (m *Mirror) Clear(ctx context.Context) error {
	return m.store.Delete(ctx, ports.MirrorKey)
}
