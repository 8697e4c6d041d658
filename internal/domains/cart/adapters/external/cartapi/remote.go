package cartapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strings"

	cartclient "github.com/Apurer/cartsync/internal/clients/http/cartapi"
	"github.com/Apurer/cartsync/internal/domains/cart/domain"
	"github.com/Apurer/cartsync/internal/domains/cart/ports"
)

// authPhrases are the free-text messages older deployments use instead of a 401.
var authPhrases = []string{"invalid token", "unauthorized", "please login"}

// Remote implements ports.RemoteCart over the cart HTTP API. Every call is
// authenticated with the token currently held by the session.
type Remote struct {
	client  *cartclient.Client
	session ports.Session
}

func NewRemote(client *cartclient.Client, session ports.Session) *Remote {
	return &Remote{client: client, session: session}
}

func (r *Remote) FetchCart(ctx context.Context) ([]domain.CartLine, error) {
	const op = "fetch cart"
	env, err := r.call(ctx, op, func(auth cartclient.RequestEditorFn) (*cartclient.CartEnvelope, error) {
		return r.client.GetCart(ctx, auth)
	})
	if err != nil {
		return nil, err
	}
	if env.Items == nil {
		return []domain.CartLine{}, nil
	}
	return FromPayload(*env.Items), nil
}

func (r *Remote) AddItem(ctx context.Context, item domain.Item) (*ports.Result, error) {
	return r.mutate(ctx, "add item", func(auth cartclient.RequestEditorFn) (*cartclient.CartEnvelope, error) {
		return r.client.AddItem(ctx, ToPayload(item), auth)
	})
}

func (r *Remote) UpdateItemQuantity(ctx context.Context, itemID string, quantity int) (*ports.Result, error) {
	return r.mutate(ctx, "update item quantity", func(auth cartclient.RequestEditorFn) (*cartclient.CartEnvelope, error) {
		return r.client.UpdateItem(ctx, itemID, quantity, auth)
	})
}

func (r *Remote) RemoveItem(ctx context.Context, itemID string) (*ports.Result, error) {
	return r.mutate(ctx, "remove item", func(auth cartclient.RequestEditorFn) (*cartclient.CartEnvelope, error) {
		return r.client.RemoveItem(ctx, itemID, auth)
	})
}

func (r *Remote) Clear(ctx context.Context) error {
	const op = "clear cart"
	auth, err := r.auth(ctx, op)
	if err != nil {
		return err
	}
	if err := r.client.ClearCart(ctx, auth); err != nil {
		return classify(op, err)
	}
	return nil
}

func (r *Remote) mutate(ctx context.Context, op string, send func(cartclient.RequestEditorFn) (*cartclient.CartEnvelope, error)) (*ports.Result, error) {
	env, err := r.call(ctx, op, send)
	if err != nil {
		return nil, err
	}
	if env.Items == nil {
		return &ports.Result{}, nil
	}
	return ports.ResultWithItems(FromPayload(*env.Items)), nil
}

func (r *Remote) call(ctx context.Context, op string, send func(cartclient.RequestEditorFn) (*cartclient.CartEnvelope, error)) (*cartclient.CartEnvelope, error) {
	auth, err := r.auth(ctx, op)
	if err != nil {
		return nil, err
	}
	env, err := send(auth)
	if err != nil {
		return nil, classify(op, err)
	}
	if !env.Success {
		return nil, classifyMessage(op, env.Message)
	}
	return env, nil
}

func (r *Remote) auth(ctx context.Context, op string) (cartclient.RequestEditorFn, error) {
	token, ok := r.session.Token(ctx)
	if !ok || token == "" {
		return nil, ports.NewRemoteError(ports.KindAuth, op, errors.New("no session token"))
	}
	return cartclient.WithBearerToken(token), nil
}

// classify maps transport and HTTP failures onto ports.ErrorKind.
func classify(op string, err error) error {
	var statusErr *cartclient.StatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.StatusCode == http.StatusUnauthorized || mentionsAuth(statusErr.Message()):
			return ports.NewRemoteError(ports.KindAuth, op, err)
		case statusErr.StatusCode == http.StatusBadGateway,
			statusErr.StatusCode == http.StatusServiceUnavailable,
			statusErr.StatusCode == http.StatusGatewayTimeout:
			return ports.NewRemoteError(ports.KindNetwork, op, err)
		case statusErr.StatusCode >= 400 && statusErr.StatusCode < 500:
			return ports.NewRemoteError(ports.KindValidation, op, err)
		default:
			return ports.NewRemoteError(ports.KindRemote, op, err)
		}
	}
	var urlErr *url.Error
	var netErr net.Error
	if errors.As(err, &urlErr) || errors.As(err, &netErr) ||
		errors.Is(err, context.DeadlineExceeded) {
		return ports.NewRemoteError(ports.KindNetwork, op, err)
	}
	return ports.NewRemoteError(ports.KindRemote, op, err)
}

func classifyMessage(op, message string) error {
	err := errors.New(strings.TrimSpace(message))
	if message == "" {
		err = errors.New("cart API reported failure")
	}
	if mentionsAuth(message) {
		return ports.NewRemoteError(ports.KindAuth, op, err)
	}
	return ports.NewRemoteError(ports.KindRemote, op, err)
}

func mentionsAuth(message string) bool {
	message = strings.ToLower(message)
	for _, phrase := range authPhrases {
		if strings.Contains(message, phrase) {
			return true
		}
	}
	return false
}

var _ ports.RemoteCart = (*Remote)(nil)
