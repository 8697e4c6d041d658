package application

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdomain "github.com/Apurer/cartsync/internal/domains/cart/domain"
	"github.com/Apurer/cartsync/internal/domains/carts/adapters/memory"
)

func textbook(id string) cartdomain.Item {
	return cartdomain.Item{ID: id, Title: "Linear algebra", Price: 40, SellerID: "seller-1", SellerName: "Sam"}
}

func TestService_AddIncrementsAndPersists(t *testing.T) {
	svc := NewService(memory.NewRepository())
	ctx := context.Background()

	_, err := svc.Add(ctx, "buyer", textbook("A"))
	require.NoError(t, err)
	lines, err := svc.Add(ctx, "buyer", textbook("A"))
	require.NoError(t, err)

	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)

	stored, err := svc.Get(ctx, "buyer")
	require.NoError(t, err)
	assert.Equal(t, lines, stored)
}

func TestService_RejectsSelfPurchase(t *testing.T) {
	svc := NewService(memory.NewRepository())

	_, err := svc.Add(context.Background(), "seller-1", textbook("A"))
	require.ErrorIs(t, err, ErrSelfPurchase)
}

func TestService_EnforcesQuantityLimit(t *testing.T) {
	svc := NewService(memory.NewRepository())
	ctx := context.Background()

	_, err := svc.Add(ctx, "buyer", textbook("A"))
	require.NoError(t, err)
	_, err = svc.SetQuantity(ctx, "buyer", "A", cartdomain.MaxQuantityPerItem)
	require.NoError(t, err)

	_, err = svc.Add(ctx, "buyer", textbook("A"))
	require.ErrorIs(t, err, cartdomain.ErrQuantityLimitExceeded)

	_, err = svc.SetQuantity(ctx, "buyer", "A", cartdomain.MaxQuantityPerItem+1)
	require.ErrorIs(t, err, cartdomain.ErrQuantityLimitExceeded)

	_, err = svc.SetQuantity(ctx, "buyer", "A", -2)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_SetQuantityUnknownLine(t *testing.T) {
	svc := NewService(memory.NewRepository())

	_, err := svc.SetQuantity(context.Background(), "buyer", "missing", 2)
	require.ErrorIs(t, err, ErrLineNotFound)
}

func TestService_RemoveAndClear(t *testing.T) {
	svc := NewService(memory.NewRepository())
	ctx := context.Background()

	_, err := svc.Add(ctx, "buyer", textbook("A"))
	require.NoError(t, err)
	_, err = svc.Add(ctx, "buyer", textbook("B"))
	require.NoError(t, err)

	lines, err := svc.Remove(ctx, "buyer", "A")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "B", lines[0].ID)

	lines, err = svc.Remove(ctx, "buyer", "A")
	require.NoError(t, err)
	assert.Len(t, lines, 1)

	require.NoError(t, svc.Clear(ctx, "buyer"))
	lines, err = svc.Get(ctx, "buyer")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestService_RequiresUser(t *testing.T) {
	svc := NewService(memory.NewRepository())

	_, err := svc.Get(context.Background(), "  ")
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Add(context.Background(), "", textbook("A"))
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_ConcurrentAddsAreSerialized(t *testing.T) {
	svc := NewService(memory.NewRepository())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Add(ctx, "buyer", textbook("A"))
		}()
	}
	wg.Wait()

	lines, err := svc.Get(ctx, "buyer")
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 8, lines[0].Quantity)
}
