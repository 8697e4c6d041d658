package cartapi

import (
	"context"
	"errors"
	"strings"

	cartclient "github.com/Apurer/cartsync/internal/clients/http/cartapi"
	"github.com/Apurer/cartsync/internal/domains/cart/ports"
)

// Login exchanges userID for a token and stores both.
func Login(ctx context.Context, client *cartclient.Client, store ports.Credentials, userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return errors.New("user id is required")
	}
	token, err := client.CreateSession(ctx, userID)
	if err != nil {
		return classify("login", err)
	}
	return store.Login(ctx, userID, token)
}

// Logout revokes the stored token on the server and forgets it locally. The
// local credentials are cleared even when the server cannot be reached.
func Logout(ctx context.Context, client *cartclient.Client, store ports.Credentials) error {
	token, ok := store.Token(ctx)
	var revokeErr error
	if ok && token != "" {
		if err := client.DeleteSession(ctx, cartclient.WithBearerToken(token)); err != nil {
			revokeErr = classify("logout", err)
		}
	}
	return errors.Join(revokeErr, store.ClearTokens(ctx))
}
