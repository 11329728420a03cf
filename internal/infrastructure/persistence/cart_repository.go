package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/shared"
)

// GormCartRepository implements cart.Repository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// AddOrIncrement inserts the line or increments the existing one in a single
// upsert statement. The conflict target is the (cart_id, product_id) primary
// key; on conflict only quantity grows and the stored unit price is kept, so
// a line always charges the price captured when it was first created. Being
// one statement, two concurrent additions of the same product cannot lose an
// update or produce a duplicate row.
func (r *GormCartRepository) AddOrIncrement(ctx context.Context, line *cart.Line) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("cart_lines.quantity + ?", line.Quantity),
			"updated_at": time.Now(),
		}),
	}).Create(line).Error
}

// Decrement lowers the line's quantity by one, deleting the line when it
// would reach zero. Both statements run in one transaction; the guarded
// UPDATE only matches rows above quantity 1, so a stored quantity can never
// go to zero or below even under concurrent decrements.
func (r *GormCartRepository) Decrement(ctx context.Context, cartID, productID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&cart.Line{}).
			Where("cart_id = ? AND product_id = ? AND quantity > 1", cartID, productID).
			UpdateColumns(map[string]interface{}{
				"quantity":   gorm.Expr("quantity - 1"),
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return nil
		}

		// Quantity was 1 (delete) or the line does not exist (not found)
		del := tx.Where("cart_id = ? AND product_id = ?", cartID, productID).
			Delete(&cart.Line{})
		if del.Error != nil {
			return del.Error
		}
		if del.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Remove deletes the line outright
func (r *GormCartRepository) Remove(ctx context.Context, cartID, productID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&cart.Line{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindLines returns the current lines of the cart, oldest first
func (r *GormCartRepository) FindLines(ctx context.Context, cartID uuid.UUID) ([]cart.Line, error) {
	var lines []cart.Line
	if err := r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Order("created_at ASC").
		Find(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

// FindView returns the cart lines joined with product display fields
func (r *GormCartRepository) FindView(ctx context.Context, cartID uuid.UUID) ([]cart.LineView, error) {
	var views []cart.LineView
	if err := r.db.WithContext(ctx).
		Table("cart_lines").
		Select("cart_lines.cart_id, cart_lines.product_id, cart_lines.quantity, cart_lines.unit_price, products.name, products.description, products.image_url").
		Joins("JOIN products ON products.id = cart_lines.product_id").
		Where("cart_lines.cart_id = ?", cartID).
		Order("cart_lines.created_at ASC").
		Scan(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}

// Ensure GormCartRepository implements cart.Repository
var _ cart.Repository = (*GormCartRepository)(nil)
