package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdomain "github.com/Apurer/cartsync/internal/domains/cart/domain"
	"github.com/Apurer/cartsync/internal/domains/carts/domain"
)

func TestRepository_TracksMetadata(t *testing.T) {
	repo := NewRepository()
	created := time.Date(2024, 9, 1, 10, 0, 0, 0, time.UTC)
	repo.WithClock(func() time.Time { return created })
	ctx := context.Background()

	empty, err := repo.Load(ctx, "buyer")
	require.NoError(t, err)
	assert.Empty(t, empty.Entity.Lines())
	assert.True(t, empty.Metadata.CreatedAt.IsZero())

	doc, err := domain.NewDocument("buyer", []cartdomain.CartLine{{Item: cartdomain.Item{ID: "A", Price: 5}, Quantity: 2}})
	require.NoError(t, err)
	_, err = repo.Save(ctx, doc)
	require.NoError(t, err)

	updated := created.Add(time.Minute)
	repo.WithClock(func() time.Time { return updated })
	saved, err := repo.Save(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, created, saved.Metadata.CreatedAt)
	assert.Equal(t, updated, saved.Metadata.UpdatedAt)

	require.NoError(t, repo.Delete(ctx, "buyer"))
	reloaded, err := repo.Load(ctx, "buyer")
	require.NoError(t, err)
	assert.Empty(t, reloaded.Entity.Lines())
}

func TestRepository_SaveCopiesDocument(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	doc, err := domain.NewDocument("buyer", nil)
	require.NoError(t, err)
	_, err = doc.Cart.Increment(cartdomain.Item{ID: "A"})
	require.NoError(t, err)
	_, err = repo.Save(ctx, doc)
	require.NoError(t, err)

	_, err = doc.Cart.Increment(cartdomain.Item{ID: "A"})
	require.NoError(t, err)

	stored, err := repo.Load(ctx, "buyer")
	require.NoError(t, err)
	require.Len(t, stored.Entity.Lines(), 1)
	assert.Equal(t, 1, stored.Entity.Lines()[0].Quantity)
}
