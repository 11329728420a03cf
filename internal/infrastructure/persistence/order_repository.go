package persistence

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/ordering"
	"github.com/storefront/backend/internal/domain/shared"
)

// GormOrderRepository implements ordering.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// CommitFromCart converts the cart's contents into a persisted order and
// empties the cart, all inside one serializable transaction. The cart lines
// read here and the lines deleted at the end are covered by the same
// isolation scope, so a line added while the commit runs is either part of
// the order or still in the cart afterwards, never silently discarded.
// Any failure rolls the whole transaction back: no order row, no order
// lines, cart untouched.
func (r *GormOrderRepository) CommitFromCart(
	ctx context.Context,
	cartID uuid.UUID,
	build func(lines []cart.Line) (*ordering.Order, error),
) (*ordering.Order, error) {
	var order *ordering.Order

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lines []cart.Line
		if err := tx.Where("cart_id = ?", cartID).
			Order("created_at ASC").
			Find(&lines).Error; err != nil {
			return err
		}

		built, err := build(lines)
		if err != nil {
			return err
		}

		// Creates the order row and its lines through the association
		if err := tx.Create(built).Error; err != nil {
			return err
		}

		if err := tx.Where("cart_id = ?", cartID).Delete(&cart.Line{}).Error; err != nil {
			return err
		}

		order = built
		return nil
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})

	if err != nil {
		return nil, err
	}
	return order, nil
}

// FindByID finds an order with its lines
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.Order, error) {
	var order ordering.Order
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll returns all orders with their lines, newest first
func (r *GormOrderRepository) FindAll(ctx context.Context) ([]ordering.Order, error) {
	var orders []ordering.Order
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Ensure GormOrderRepository implements ordering.OrderRepository
var _ ordering.OrderRepository = (*GormOrderRepository)(nil)
