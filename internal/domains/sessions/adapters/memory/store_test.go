package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/cartsync/internal/domains/sessions/domain"
	"github.com/Apurer/cartsync/internal/domains/sessions/ports"
)

func TestStore_PurgeExpired(t *testing.T) {
	store := NewStore()
	now := time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)
	store.WithClock(func() time.Time { return now })
	ctx := context.Background()

	stale, err := domain.NewSession("stale", "u1", now.Add(-time.Second))
	require.NoError(t, err)
	fresh, err := domain.NewSession("fresh", "u2", now.Add(time.Hour))
	require.NoError(t, err)
	forever, err := domain.NewSession("forever", "u3", time.Time{})
	require.NoError(t, err)
	for _, s := range []*domain.Session{stale, fresh, forever} {
		require.NoError(t, store.Save(ctx, s))
	}

	purged, err := store.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	_, err = store.Resolve(ctx, "stale")
	require.ErrorIs(t, err, ports.ErrNotFound)
	got, err := store.Resolve(ctx, "fresh")
	require.NoError(t, err)
	assert.Equal(t, "u2", got.UserID)
}
