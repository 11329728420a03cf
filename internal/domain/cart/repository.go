package cart

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for cart lines.
//
// AddOrIncrement must be a single atomic insert-or-increment so two
// concurrent additions of the same product can never race into a lost update
// or a duplicate row. Decrement and Remove report shared.ErrNotFound when no
// line exists for the product.
type Repository interface {
	// AddOrIncrement inserts the line, or if a line for (cart_id, product_id)
	// already exists, increases its quantity by line.Quantity. The existing
	// line's unit price is kept as-is.
	AddOrIncrement(ctx context.Context, line *Line) error

	// Decrement lowers the line's quantity by one. A line at quantity 1 is
	// deleted instead of being stored at zero.
	Decrement(ctx context.Context, cartID, productID uuid.UUID) error

	// Remove deletes the line outright
	Remove(ctx context.Context, cartID, productID uuid.UUID) error

	// FindLines returns the current lines of the cart
	FindLines(ctx context.Context, cartID uuid.UUID) ([]Line, error)

	// FindView returns the cart lines joined with product display fields
	FindView(ctx context.Context, cartID uuid.UUID) ([]LineView, error)
}
