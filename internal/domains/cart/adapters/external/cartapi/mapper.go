package cartapi

import (
	cartclient "github.com/Apurer/cartsync/internal/clients/http/cartapi"
	"github.com/Apurer/cartsync/internal/domains/cart/domain"
)

// ToPayload converts a listing into the add-item request body.
func ToPayload(item domain.Item) cartclient.CartLine {
	return cartclient.CartLine{
		Id:         item.ID,
		Title:      item.Title,
		Price:      item.Price,
		Image:      item.Image,
		SellerId:   item.SellerID,
		SellerName: item.SellerName,
	}
}

// FromPayload converts the server's line list. Normalization happens when the
// engine adopts the lines.
func FromPayload(lines []cartclient.CartLine) []domain.CartLine {
	result := make([]domain.CartLine, 0, len(lines))
	for _, line := range lines {
		result = append(result, domain.CartLine{
			Item: domain.Item{
				ID:         line.Id,
				Title:      line.Title,
				Price:      line.Price,
				Image:      line.Image,
				SellerID:   line.SellerId,
				SellerName: line.SellerName,
			},
			Quantity: line.Quantity,
		})
	}
	return result
}
