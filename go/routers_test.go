package cartserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartsmemory "github.com/Apurer/cartsync/internal/domains/carts/adapters/memory"
	cartsapp "github.com/Apurer/cartsync/internal/domains/carts/application"
	sessionmemory "github.com/Apurer/cartsync/internal/domains/sessions/adapters/memory"
	sessionapp "github.com/Apurer/cartsync/internal/domains/sessions/application"
	apierrors "github.com/Apurer/cartsync/internal/shared/errors"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	sessions := sessionapp.NewService(sessionmemory.NewStore(), time.Hour)
	return NewRouterWithGinEngine(gin.New(), ApiHandleFunctions{
		CartAPI:    NewCartAPI(cartsapp.NewService(cartsmemory.NewRepository())),
		SessionAPI: NewSessionAPI(sessions),
		Auth:       BearerAuth(sessions),
	})
}

func do(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}
	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, router *gin.Engine, userID string) string {
	t.Helper()
	rec := do(t, router, http.MethodPost, "/v1/sessions", "", SessionRequest{UserId: userID})
	require.Equal(t, http.StatusCreated, rec.Code)
	var resp SessionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) CartResponse {
	t.Helper()
	var resp CartResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) apierrors.ProblemDetail {
	t.Helper()
	assert.Equal(t, apierrors.ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	var problem apierrors.ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return problem
}

var textbook = AddItemRequest{Id: "A", Title: "Calculus", Price: 100, SellerId: "S1", SellerName: "Sam"}

func TestCartRoutes_RequireToken(t *testing.T) {
	router := newTestRouter(t)

	for _, token := range []string{"", "bogus"} {
		rec := do(t, router, http.MethodGet, "/v1/cart", token, nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		problem := decodeProblem(t, rec)
		assert.Equal(t, "invalid token", problem.Detail)
		assert.Equal(t, "/v1/cart", problem.Instance)
	}
}

func TestCartRoutes_AddUpdateRemoveClear(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router, "buyer")

	rec := do(t, router, http.MethodGet, "/v1/cart", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeCart(t, rec)
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Items)

	do(t, router, http.MethodPost, "/v1/cart/items", token, textbook)
	rec = do(t, router, http.MethodPost, "/v1/cart/items", token, textbook)
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decodeCart(t, rec)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 2, resp.Items[0].Quantity)
	assert.Equal(t, "Sam", resp.Items[0].SellerName)

	qty := 7
	rec = do(t, router, http.MethodPut, "/v1/cart/items/A", token, QuantityUpdate{Quantity: &qty})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 7, decodeCart(t, rec).Items[0].Quantity)

	rec = do(t, router, http.MethodDelete, "/v1/cart/items/A", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeCart(t, rec).Items)

	do(t, router, http.MethodPost, "/v1/cart/items", token, textbook)
	rec = do(t, router, http.MethodDelete, "/v1/cart", token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, router, http.MethodGet, "/v1/cart", token, nil)
	assert.Empty(t, decodeCart(t, rec).Items)
}

func TestCartRoutes_ProblemMapping(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router, "buyer")

	rec := do(t, router, http.MethodPost, "/v1/cart/items", token, textbook)
	require.Equal(t, http.StatusOK, rec.Code)

	tooMany := 11
	rec = do(t, router, http.MethodPut, "/v1/cart/items/A", token, QuantityUpdate{Quantity: &tooMany})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, apierrors.TypeUnprocessable, decodeProblem(t, rec).Type)

	two := 2
	rec = do(t, router, http.MethodPut, "/v1/cart/items/missing", token, QuantityUpdate{Quantity: &two})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodPut, "/v1/cart/items/A", token, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	sellerToken := login(t, router, "S1")
	rec = do(t, router, http.MethodPost, "/v1/cart/items", sellerToken, textbook)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, apierrors.TypeForbidden, decodeProblem(t, rec).Type)
}

func TestSessionRoutes_RevokeInvalidatesToken(t *testing.T) {
	router := newTestRouter(t)
	token := login(t, router, "buyer")

	rec := do(t, router, http.MethodDelete, "/v1/sessions", token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, router, http.MethodGet, "/v1/cart", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSessionRoutes_RejectEmptyUser(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/v1/sessions", "", map[string]string{"userId": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	router := newTestRouter(t)
	alice := login(t, router, "alice")
	bob := login(t, router, "bob")

	do(t, router, http.MethodPost, "/v1/cart/items", alice, textbook)

	rec := do(t, router, http.MethodGet, "/v1/cart", bob, nil)
	assert.Empty(t, decodeCart(t, rec).Items)
}
