package cartserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
	// Authenticated routes run behind BearerAuth.
	Authenticated bool
}

// ApiHandleFunctions groups the handlers and the token check they share.
type ApiHandleFunctions struct {
	CartAPI    CartAPI
	SessionAPI SessionAPI
	Auth       gin.HandlerFunc
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions) *gin.Engine {
	return NewRouterWithGinEngine(gin.Default(), handleFunctions)
}

// NewRouterWithGinEngine adds the routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		handlers := []gin.HandlerFunc{route.HandlerFunc}
		if route.Authenticated && handleFunctions.Auth != nil {
			handlers = append([]gin.HandlerFunc{handleFunctions.Auth}, handlers...)
		}
		router.Handle(route.Method, route.Pattern, handlers...)
	}
	return router
}

// DefaultHandleFunc answers routes without a handler.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{"CreateSession", http.MethodPost, "/v1/sessions", handleFunctions.SessionAPI.CreateSession, false},
		{"DeleteSession", http.MethodDelete, "/v1/sessions", handleFunctions.SessionAPI.DeleteSession, false},
		{"GetCart", http.MethodGet, "/v1/cart", handleFunctions.CartAPI.GetCart, true},
		{"ClearCart", http.MethodDelete, "/v1/cart", handleFunctions.CartAPI.ClearCart, true},
		{"AddCartItem", http.MethodPost, "/v1/cart/items", handleFunctions.CartAPI.AddCartItem, true},
		{"UpdateCartItem", http.MethodPut, "/v1/cart/items/:itemId", handleFunctions.CartAPI.UpdateCartItem, true},
		{"RemoveCartItem", http.MethodDelete, "/v1/cart/items/:itemId", handleFunctions.CartAPI.RemoveCartItem, true},
	}
}
