package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/shared"
)

// OrderStatus represents the status of an order
type OrderStatus string

// OrderStatusPending is the status every order is created with. No
// transition out of it is defined here; status changes belong to an
// administrative surface this service does not expose.
const OrderStatusPending OrderStatus = "pending"

// OrderLine is a frozen copy of a cart line at the moment the order was
// placed. LineTotal is persisted: it records what the customer was charged
// and must never be recomputed from catalog prices.
type OrderLine struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	LineTotal decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (OrderLine) TableName() string {
	return "order_lines"
}

// Order is the immutable record of a completed checkout. It is created
// exactly once by the commit and never modified afterwards.
type Order struct {
	shared.BaseEntity
	CartID      uuid.UUID       `gorm:"type:uuid;not null"`
	Customer    Customer        `gorm:"embedded"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	DeliveryFee decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Total       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Status      OrderStatus     `gorm:"type:varchar(20);not null;default:'pending'"`
	Lines       []OrderLine     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrderFromCart builds an order from the cart's current lines. The
// amounts come from the lines' stored unit prices only. An empty cart is a
// failed precondition, not an order of zero.
func NewOrderFromCart(cartID uuid.UUID, customer Customer, lines []cart.Line) (*Order, error) {
	if len(lines) == 0 {
		return nil, shared.ErrCartEmpty
	}

	subtotal := Subtotal(lines)

	order := &Order{
		BaseEntity:  shared.NewBaseEntity(),
		CartID:      cartID,
		Customer:    customer,
		Subtotal:    subtotal,
		DeliveryFee: DeliveryFee(subtotal),
		Total:       Total(subtotal),
		Status:      OrderStatusPending,
		Lines:       make([]OrderLine, 0, len(lines)),
	}

	for i := range lines {
		line := &lines[i]
		order.Lines = append(order.Lines, OrderLine{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.LineTotal(),
			CreatedAt: order.CreatedAt,
		})
	}

	return order, nil
}
