package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/cartsync/internal/domains/sessions/adapters/memory"
)

func TestService_IssueAndAuthenticate(t *testing.T) {
	svc := NewService(memory.NewStore(), time.Hour)
	ctx := context.Background()

	token, err := svc.Issue(ctx, "buyer")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	userID, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "buyer", userID)

	other, err := svc.Issue(ctx, "buyer")
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}

func TestService_IssueRequiresUser(t *testing.T) {
	svc := NewService(memory.NewStore(), 0)

	_, err := svc.Issue(context.Background(), " ")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_RejectsUnknownAndRevokedTokens(t *testing.T) {
	svc := NewService(memory.NewStore(), time.Hour)
	ctx := context.Background()

	_, err := svc.Authenticate(ctx, "")
	require.ErrorIs(t, err, ErrUnauthenticated)
	_, err = svc.Authenticate(ctx, "nope")
	require.ErrorIs(t, err, ErrUnauthenticated)

	token, err := svc.Issue(ctx, "buyer")
	require.NoError(t, err)
	require.NoError(t, svc.Revoke(ctx, token))
	_, err = svc.Authenticate(ctx, token)
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestService_ExpiredTokensAreDropped(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store, time.Minute)
	now := time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)
	svc.WithClock(func() time.Time { return now })
	ctx := context.Background()

	token, err := svc.Issue(ctx, "buyer")
	require.NoError(t, err)

	now = now.Add(time.Minute)
	_, err = svc.Authenticate(ctx, token)
	require.ErrorIs(t, err, ErrUnauthenticated)

	_, err = store.Resolve(ctx, token)
	require.Error(t, err)
}
