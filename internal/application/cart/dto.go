package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/ordering"
)

// AddItemRequest represents a request to add a product to the cart
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,gt=0"`
}

// ItemResponse is one cart line joined with product display fields
type ItemResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// Response is the full cart view with its priced summary
type Response struct {
	Items       []ItemResponse  `json:"items"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Total       decimal.Decimal `json:"total"`
}

// ToResponse converts cart line views into the cart response. The summary
// figures go through the same pricing functions the order commit uses.
func ToResponse(views []cart.LineView) Response {
	items := make([]ItemResponse, 0, len(views))
	subtotal := decimal.Zero

	for i := range views {
		v := &views[i]
		lineTotal := v.LineTotal()
		subtotal = subtotal.Add(lineTotal)
		items = append(items, ItemResponse{
			ProductID:   v.ProductID,
			Name:        v.Name,
			Description: v.Description,
			ImageURL:    v.ImageURL,
			Quantity:    v.Quantity,
			UnitPrice:   v.UnitPrice,
			LineTotal:   lineTotal,
		})
	}

	return Response{
		Items:       items,
		Subtotal:    subtotal,
		DeliveryFee: ordering.DeliveryFee(subtotal),
		Total:       ordering.Total(subtotal),
	}
}
