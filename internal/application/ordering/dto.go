package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storefront/backend/internal/domain/ordering"
)

// ==================== Checkout DTOs ====================

// PlaceOrderRequest carries the customer details for checkout
type PlaceOrderRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Address   string `json:"address" binding:"required"`
	City      string `json:"city" binding:"required"`
	State     string `json:"state" binding:"required"`
	Zip       string `json:"zip" binding:"required"`
	Country   string `json:"country" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
}

// ==================== Order DTOs ====================

// OrderLineResponse is one frozen line of a placed order
type OrderLineResponse struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// CustomerResponse echoes the customer details captured at checkout
type CustomerResponse struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
	Country   string `json:"country"`
	Phone     string `json:"phone"`
}

// OrderResponse is the receipt for a placed order
type OrderResponse struct {
	ID          uuid.UUID            `json:"id"`
	Status      ordering.OrderStatus `json:"status"`
	Customer    CustomerResponse     `json:"customer"`
	Subtotal    decimal.Decimal      `json:"subtotal"`
	DeliveryFee decimal.Decimal      `json:"delivery_fee"`
	Total       decimal.Decimal      `json:"total"`
	Lines       []OrderLineResponse  `json:"lines"`
	CreatedAt   time.Time            `json:"created_at"`
}

// ToOrderResponse converts an order aggregate to its response DTO
func ToOrderResponse(order *ordering.Order) OrderResponse {
	lines := make([]OrderLineResponse, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, OrderLineResponse{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.LineTotal,
		})
	}

	return OrderResponse{
		ID:     order.ID,
		Status: order.Status,
		Customer: CustomerResponse{
			FirstName: order.Customer.FirstName,
			LastName:  order.Customer.LastName,
			Email:     order.Customer.Email,
			Address:   order.Customer.Address,
			City:      order.Customer.City,
			State:     order.Customer.State,
			Zip:       order.Customer.Zip,
			Country:   order.Customer.Country,
			Phone:     order.Customer.Phone,
		},
		Subtotal:    order.Subtotal,
		DeliveryFee: order.DeliveryFee,
		Total:       order.Total,
		Lines:       lines,
		CreatedAt:   order.CreatedAt,
	}
}
