package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared"
)

// Line is one product's entry in a cart. A cart holds at most one line per
// product; repeated additions accumulate into Quantity. UnitPrice is captured
// from the catalog when the line is first created and is never refreshed, so
// an order placed later charges the price the customer saw when they added
// the item.
type Line struct {
	CartID    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Quantity  int             `gorm:"not null;check:quantity >= 1"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (Line) TableName() string {
	return "cart_lines"
}

// NewLine creates a cart line for the given product with the price captured
// right now. Quantity must be at least 1.
func NewLine(cartID, productID uuid.UUID, quantity int, unitPrice decimal.Decimal) (*Line, error) {
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be a positive integer")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	return &Line{
		CartID:    cartID,
		ProductID: productID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// LineTotal returns unit price times quantity. It is always derived from the
// stored fields, never persisted, so it cannot drift.
func (l *Line) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// LineView is a cart line joined with the product display fields needed to
// render the cart. Producing it never mutates cart state.
type LineView struct {
	CartID      uuid.UUID       `json:"cart_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url"`
}

// LineTotal returns unit price times quantity for the view row
func (v *LineView) LineTotal() decimal.Decimal {
	return v.UnitPrice.Mul(decimal.NewFromInt(int64(v.Quantity)))
}
