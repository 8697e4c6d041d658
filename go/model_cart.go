package cartserver

import cartdomain "github.com/Apurer/cartsync/internal/domains/cart/domain"

// CartLine is one row of the cart document on the wire.
type CartLine struct {
	Id         string  `json:"id"`
	Title      string  `json:"title"`
	Price      float64 `json:"price"`
	Image      string  `json:"image,omitempty"`
	SellerId   string  `json:"sellerId"`
	SellerName string  `json:"sellerName,omitempty"`
	Quantity   int     `json:"quantity"`
}

// CartResponse is the envelope of every cart read and mutation.
type CartResponse struct {
	Success bool       `json:"success"`
	Items   []CartLine `json:"items"`
	Message string     `json:"message,omitempty"`
}

// AddItemRequest carries the listing being added.
type AddItemRequest struct {
	Id         string  `json:"id" binding:"required"`
	Title      string  `json:"title"`
	Price      float64 `json:"price"`
	Image      string  `json:"image,omitempty"`
	SellerId   string  `json:"sellerId"`
	SellerName string  `json:"sellerName,omitempty"`
}

// QuantityUpdate sets the quantity of one line.
type QuantityUpdate struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type SessionRequest struct {
	UserId string `json:"userId" binding:"required"`
}

type SessionResponse struct {
	Token string `json:"token"`
}

func toTransportLines(lines []cartdomain.CartLine) []CartLine {
	result := make([]CartLine, 0, len(lines))
	for _, line := range lines {
		result = append(result, CartLine{
			Id:         line.ID,
			Title:      line.Title,
			Price:      line.Price,
			Image:      line.Image,
			SellerId:   line.SellerID,
			SellerName: line.SellerName,
			Quantity:   line.Quantity,
		})
	}
	return result
}

func (r AddItemRequest) toDomain() cartdomain.Item {
	return cartdomain.Item{
		ID:         r.Id,
		Title:      r.Title,
		Price:      r.Price,
		Image:      r.Image,
		SellerID:   r.SellerId,
		SellerName: r.SellerName,
	}
}
