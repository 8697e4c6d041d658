package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/Apurer/cartsync/internal/domains/cart/domain"
	"github.com/Apurer/cartsync/internal/domains/cart/ports"
)

var _ ports.Mirror = (*Mirror)(nil)

// Mirror keeps the encoded guest cart in memory, byte for byte as a browser
// storage slot would.
type Mirror struct {
	mu    sync.RWMutex
	raw   []byte
	saves int
}

func NewMirror() *Mirror {
	return &Mirror{}
}

// SetRaw overwrites the stored payload, e.g. to simulate a corrupted slot.
func (m *Mirror) SetRaw(raw []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.raw = append([]byte(nil), raw...)
}

// Raw returns a copy of the stored payload.
func (m *Mirror) Raw() []byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]byte(nil), m.raw...)
}

// Saves counts completed Save calls.
func (m *Mirror) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}

func (m *Mirror) Load(_ context.Context) ([]domain.CartLine, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.raw) == 0 {
		return nil, nil
	}
	var lines []domain.CartLine
	if err := json.Unmarshal(m.raw, &lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (m *Mirror) Save(_ context.Context, lines []domain.CartLine) error {
	if lines == nil {
		lines = []domain.CartLine{}
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.raw = raw
	m.saves++
	return nil
}

func (m *Mirror) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.raw = nil
	return nil
}
