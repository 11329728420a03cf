package ordering

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/cart"
)

// OrderRepository defines the persistence contract for orders.
//
// CommitFromCart is the transactional heart of checkout: it reads the cart's
// lines, invokes build to turn them into an order, persists the order with
// its lines, and clears every line of the cart, all inside one serializable
// transaction. If any step fails nothing is persisted and the cart is left
// exactly as it was. Two concurrent commits of the same cart serialize; the
// later one sees whatever cart the earlier one left behind.
type OrderRepository interface {
	// CommitFromCart atomically converts the cart's contents into a
	// persisted order and empties the cart. build receives the snapshot of
	// cart lines read inside the transaction and returns the order to
	// persist, or an error to abort the whole commit.
	CommitFromCart(ctx context.Context, cartID uuid.UUID, build func(lines []cart.Line) (*Order, error)) (*Order, error)

	// FindByID finds an order with its lines
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindAll returns all orders with their lines, newest first
	FindAll(ctx context.Context) ([]Order, error)
}
