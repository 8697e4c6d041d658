package cartserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	cartdomain "github.com/Apurer/cartsync/internal/domains/cart/domain"
	cartsports "github.com/Apurer/cartsync/internal/domains/carts/ports"
)

// CartAPI serves the per-user cart document.
type CartAPI struct {
	service cartsports.Service
}

func NewCartAPI(service cartsports.Service) CartAPI {
	return CartAPI{service: service}
}

func respondLines(c *gin.Context, lines []cartdomain.CartLine) {
	c.JSON(http.StatusOK, CartResponse{Success: true, Items: toTransportLines(lines)})
}

// Get /v1/cart
// Returns the caller's cart
func (api *CartAPI) GetCart(c *gin.Context) {
	lines, err := api.service.Get(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondLines(c, lines)
}

// Post /v1/cart/items
// Adds one unit of a listing
func (api *CartAPI) AddCartItem(c *gin.Context) {
	var payload AddItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	lines, err := api.service.Add(c.Request.Context(), currentUser(c), payload.toDomain())
	if err != nil {
		respondError(c, err)
		return
	}
	respondLines(c, lines)
}

// Put /v1/cart/items/:itemId
// Sets the quantity of a line, zero removes it
func (api *CartAPI) UpdateCartItem(c *gin.Context) {
	var payload QuantityUpdate
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	lines, err := api.service.SetQuantity(c.Request.Context(), currentUser(c), c.Param("itemId"), *payload.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	respondLines(c, lines)
}

// Delete /v1/cart/items/:itemId
// Removes a line
func (api *CartAPI) RemoveCartItem(c *gin.Context) {
	lines, err := api.service.Remove(c.Request.Context(), currentUser(c), c.Param("itemId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondLines(c, lines)
}

// Delete /v1/cart
// Empties the cart
func (api *CartAPI) ClearCart(c *gin.Context) {
	if err := api.service.Clear(c.Request.Context(), currentUser(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
