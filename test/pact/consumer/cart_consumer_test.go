//go:build pact
// +build pact

package consumer_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"

	cartclient "github.com/Apurer/cartsync/internal/clients/http/cartapi"
	"github.com/Apurer/cartsync/internal/domains/cart/adapters/external/cartapi"
	cartmemory "github.com/Apurer/cartsync/internal/domains/cart/adapters/memory"
	"github.com/Apurer/cartsync/internal/domains/cart/domain"
	"github.com/Apurer/cartsync/internal/domains/cart/ports"
	pacttest "github.com/Apurer/cartsync/test/pact"
)

func TestCartctlContract(t *testing.T) {
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")
	bearer := matchers.S("Bearer " + pacttest.BuyerToken)
	lineMatcher := func(quantity int) matchers.Map {
		return matchers.Map{
			"id":         matchers.S(pacttest.TextbookID),
			"title":      matchers.Like(pacttest.TextbookTitle),
			"price":      matchers.Like(pacttest.TextbookPrice),
			"sellerId":   matchers.S(pacttest.SellerID),
			"sellerName": matchers.Like(pacttest.SellerName),
			"quantity":   matchers.Like(quantity),
		}
	}
	cartBody := func(quantity int) matchers.Map {
		return matchers.Map{
			"success": matchers.Like(true),
			"items":   matchers.EachLike(lineMatcher(quantity), 1),
		}
	}

	pact.AddInteraction().
		Given(pacttest.StateCartWithBook).
		UponReceiving("a request to fetch the cart").
		WithRequest("GET", "/v1/cart", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Authorization", bearer)
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(cartBody(1))
		})

	pact.AddInteraction().
		Given(pacttest.StateEmptyCart).
		UponReceiving("a request to add a textbook").
		WithRequest("POST", "/v1/cart/items", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Authorization", bearer)
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(pacttest.ExampleTextbook())
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(cartBody(1))
		})

	pact.AddInteraction().
		Given(pacttest.StateCartWithBook).
		UponReceiving("a request to set the textbook quantity").
		WithRequest("PUT", "/v1/cart/items/"+pacttest.TextbookID, func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Authorization", bearer)
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(map[string]any{"quantity": 3})
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(cartBody(3))
		})

	pact.AddInteraction().
		Given(pacttest.StateCartWithBook).
		UponReceiving("a request to remove the textbook").
		WithRequest("DELETE", "/v1/cart/items/"+pacttest.TextbookID, func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Authorization", bearer)
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(map[string]any{"success": true, "items": []any{}})
		})

	pact.AddInteraction().
		Given(pacttest.StateCartWithBook).
		UponReceiving("a request to clear the cart").
		WithRequest("DELETE", "/v1/cart", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Authorization", bearer)
		}).
		WillRespondWith(http.StatusNoContent)

	pact.AddInteraction().
		Given(pacttest.StateNoSession).
		UponReceiving("a cart request with a revoked token").
		WithRequest("GET", "/v1/cart", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Authorization", matchers.S("Bearer "+pacttest.RevokedToken))
		}).
		WillRespondWith(http.StatusUnauthorized, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/unauthorized"),
				"title":  matchers.S("Unauthorized"),
				"status": matchers.Like(http.StatusUnauthorized),
				"detail": matchers.S("invalid token"),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		remote, session, err := newRemote(config)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		lines, err := remote.FetchCart(ctx)
		if err != nil {
			return fmt.Errorf("fetch cart: %w", err)
		}
		if len(lines) != 1 || lines[0].ID != pacttest.TextbookID {
			return fmt.Errorf("expected one textbook line, got %+v", lines)
		}

		textbook := domain.Item{
			ID:         pacttest.TextbookID,
			Title:      pacttest.TextbookTitle,
			Price:      pacttest.TextbookPrice,
			SellerID:   pacttest.SellerID,
			SellerName: pacttest.SellerName,
		}
		added, err := remote.AddItem(ctx, textbook)
		if err != nil {
			return fmt.Errorf("add item: %w", err)
		}
		if !added.HasItems {
			return fmt.Errorf("expected authoritative items after add")
		}

		updated, err := remote.UpdateItemQuantity(ctx, pacttest.TextbookID, 3)
		if err != nil {
			return fmt.Errorf("update quantity: %w", err)
		}
		if updated.Items[0].Quantity != 3 {
			return fmt.Errorf("expected quantity 3, got %d", updated.Items[0].Quantity)
		}

		removed, err := remote.RemoveItem(ctx, pacttest.TextbookID)
		if err != nil {
			return fmt.Errorf("remove item: %w", err)
		}
		if !removed.HasItems || len(removed.Items) != 0 {
			return fmt.Errorf("expected empty authoritative list, got %+v", removed)
		}

		if err := remote.Clear(ctx); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}

		if err := session.Login(ctx, pacttest.BuyerID, pacttest.RevokedToken); err != nil {
			return err
		}
		if _, err := remote.FetchCart(ctx); !ports.IsAuth(err) {
			return fmt.Errorf("expected auth failure for revoked token, got %v", err)
		}
		return nil
	})
	require.NoError(t, err)
}

func newRemote(config pactconsumer.MockServerConfig) (*cartapi.Remote, *cartmemory.Session, error) {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	client, err := cartclient.NewClient(
		fmt.Sprintf("http://%s:%d", host, config.Port),
		cartclient.WithHTTPClient(&http.Client{Transport: transport, Timeout: 10 * time.Second}),
	)
	if err != nil {
		return nil, nil, err
	}
	session := cartmemory.NewSession()
	if err := session.Login(context.Background(), pacttest.BuyerID, pacttest.BuyerToken); err != nil {
		return nil, nil, err
	}
	return cartapi.NewRemote(client, session), session, nil
}
