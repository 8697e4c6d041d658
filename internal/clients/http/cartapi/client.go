package cartapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"

	apierrors "github.com/Apurer/cartsync/internal/shared/errors"
)

// RequestIDHeader correlates client calls with server logs.
const RequestIDHeader = "X-Request-ID"

// HttpRequestDoer performs HTTP requests.
type HttpRequestDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// RequestEditorFn is the function signature for the RequestEditor callback function.
type RequestEditorFn func(ctx context.Context, req *http.Request) error

// ClientOption allows setting custom parameters during construction.
type ClientOption func(*Client) error

// WithHTTPClient allows overriding the default Doer.
func WithHTTPClient(doer HttpRequestDoer) ClientOption {
	return func(c *Client) error {
		c.client = doer
		return nil
	}
}

// WithRequestEditorFn allows setting up a callback function, which will be
// called right before sending the request.
func WithRequestEditorFn(fn RequestEditorFn) ClientOption {
	return func(c *Client) error {
		c.requestEditors = append(c.requestEditors, fn)
		return nil
	}
}

// WithBearerToken returns an editor that authenticates one request.
func WithBearerToken(token string) RequestEditorFn {
	return func(_ context.Context, req *http.Request) error {
		req.Header.Set("Authorization", "Bearer "+token)
		return nil
	}
}

// CartLine is one row of the remote cart document.
type CartLine struct {
	Id         string  `json:"id"`
	Title      string  `json:"title"`
	Price      float64 `json:"price"`
	Image      string  `json:"image,omitempty"`
	SellerId   string  `json:"sellerId"`
	SellerName string  `json:"sellerName,omitempty"`
	Quantity   int     `json:"quantity,omitempty"`
}

// CartEnvelope is the body of cart reads and mutations. Items is nil when the
// service omitted them.
type CartEnvelope struct {
	Success bool        `json:"success"`
	Items   *[]CartLine `json:"items,omitempty"`
	Message string      `json:"message,omitempty"`
}

type quantityBody struct {
	Quantity int `json:"quantity"`
}

type sessionBody struct {
	UserId string `json:"userId"`
}

type sessionResponse struct {
	Token string `json:"token"`
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Problem    *apierrors.ProblemDetail
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("cart API responded %d: %s", e.StatusCode, e.Message())
}

// Message returns the most specific human-readable text of the response.
func (e *StatusError) Message() string {
	if e.Problem != nil {
		if detail := strings.TrimSpace(e.Problem.Detail); detail != "" {
			return detail
		}
		if title := strings.TrimSpace(e.Problem.Title); title != "" {
			return title
		}
	}
	if body := strings.TrimSpace(e.Body); body != "" {
		return body
	}
	return http.StatusText(e.StatusCode)
}

// Client speaks the cart service HTTP API.
type Client struct {
	server         string
	client         HttpRequestDoer
	requestEditors []RequestEditorFn
}

// NewClient creates a new Client, with reasonable defaults.
func NewClient(server string, opts ...ClientOption) (*Client, error) {
	server = strings.TrimSpace(server)
	if server == "" {
		return nil, errors.New("cart API base URL is required")
	}
	if !strings.HasSuffix(server, "/") {
		server += "/"
	}
	c := &Client{server: server}
	for _, o := range opts {
		if err := o(c); err != nil {
			return nil, err
		}
	}
	if c.client == nil {
		c.client = &http.Client{Timeout: 5 * time.Second}
	}
	return c, nil
}

func (c *Client) GetCart(ctx context.Context, reqEditors ...RequestEditorFn) (*CartEnvelope, error) {
	var out CartEnvelope
	if err := c.do(ctx, http.MethodGet, "v1/cart", nil, &out, reqEditors); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddItem(ctx context.Context, line CartLine, reqEditors ...RequestEditorFn) (*CartEnvelope, error) {
	var out CartEnvelope
	if err := c.do(ctx, http.MethodPost, "v1/cart/items", line, &out, reqEditors); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateItem(ctx context.Context, itemID string, quantity int, reqEditors ...RequestEditorFn) (*CartEnvelope, error) {
	path, err := itemPath(itemID)
	if err != nil {
		return nil, err
	}
	var out CartEnvelope
	if err := c.do(ctx, http.MethodPut, path, quantityBody{Quantity: quantity}, &out, reqEditors); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RemoveItem(ctx context.Context, itemID string, reqEditors ...RequestEditorFn) (*CartEnvelope, error) {
	path, err := itemPath(itemID)
	if err != nil {
		return nil, err
	}
	var out CartEnvelope
	if err := c.do(ctx, http.MethodDelete, path, nil, &out, reqEditors); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ClearCart(ctx context.Context, reqEditors ...RequestEditorFn) error {
	return c.do(ctx, http.MethodDelete, "v1/cart", nil, nil, reqEditors)
}

// CreateSession exchanges a user id for a bearer token.
func (c *Client) CreateSession(ctx context.Context, userID string, reqEditors ...RequestEditorFn) (string, error) {
	var out sessionResponse
	if err := c.do(ctx, http.MethodPost, "v1/sessions", sessionBody{UserId: userID}, &out, reqEditors); err != nil {
		return "", err
	}
	if strings.TrimSpace(out.Token) == "" {
		return "", errors.New("cart API returned an empty token")
	}
	return out.Token, nil
}

func (c *Client) DeleteSession(ctx context.Context, reqEditors ...RequestEditorFn) error {
	return c.do(ctx, http.MethodDelete, "v1/sessions", nil, nil, reqEditors)
}

func itemPath(itemID string) (string, error) {
	pathParam, err := runtime.StyleParamWithLocation("simple", false, "itemId", runtime.ParamLocationPath, itemID)
	if err != nil {
		return "", err
	}
	return "v1/cart/items/" + pathParam, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, reqEditors []RequestEditorFn) error {
	serverURL, err := url.Parse(c.server)
	if err != nil {
		return err
	}
	queryURL, err := serverURL.Parse(path)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, queryURL.String(), reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, uuid.NewString())
	for _, editor := range append(append([]RequestEditorFn{}, c.requestEditors...), reqEditors...) {
		if err := editor(ctx, req); err != nil {
			return err
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{StatusCode: resp.StatusCode, Body: string(raw)}
		if problem, ok := apierrors.ParseProblem(raw); ok {
			statusErr.Problem = problem
			statusErr.Body = ""
		}
		return statusErr
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode cart API response: %w", err)
	}
	return nil
}
