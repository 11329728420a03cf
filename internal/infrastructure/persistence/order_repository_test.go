package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/ordering"
	"github.com/storefront/backend/internal/domain/shared"
)

func setupOrderTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&catalog.Product{}, &cart.Line{}, &ordering.Order{}, &ordering.OrderLine{})
	require.NoError(t, err)

	return db
}

func testCustomer(t *testing.T) ordering.Customer {
	t.Helper()
	customer, err := ordering.NewCustomer(
		"Jane", "Doe", "jane@example.com",
		"1 Main St", "Springfield", "IL", "62701", "USA", "+1 555 0100",
	)
	require.NoError(t, err)
	return customer
}

func buildOrder(cartID uuid.UUID, customer ordering.Customer) func([]cart.Line) (*ordering.Order, error) {
	return func(lines []cart.Line) (*ordering.Order, error) {
		return ordering.NewOrderFromCart(cartID, customer, lines)
	}
}

func TestOrderRepository_CommitFromCart(t *testing.T) {
	ctx := context.Background()

	t.Run("commits cart into an order and clears the cart", func(t *testing.T) {
		db := setupOrderTestDB(t)
		cartRepo := NewGormCartRepository(db)
		orderRepo := NewGormOrderRepository(db)
		cartID := uuid.New()

		mug := seedProduct(t, db, "Mug", "5.00")
		bowl := seedProduct(t, db, "Bowl", "3.00")
		require.NoError(t, cartRepo.AddOrIncrement(ctx, mustLine(t, cartID, mug.ID, 2, "5.00")))
		require.NoError(t, cartRepo.AddOrIncrement(ctx, mustLine(t, cartID, bowl.ID, 1, "3.00")))

		order, err := orderRepo.CommitFromCart(ctx, cartID, buildOrder(cartID, testCustomer(t)))
		require.NoError(t, err)
		require.NotNil(t, order)

		assert.True(t, order.Subtotal.Equal(decimal.NewFromInt(13)))
		assert.True(t, order.DeliveryFee.Equal(decimal.NewFromInt(2)))
		assert.True(t, order.Total.Equal(decimal.NewFromInt(15)))
		assert.Equal(t, ordering.OrderStatusPending, order.Status)

		// The order and its lines are persisted
		found, err := orderRepo.FindByID(ctx, order.ID)
		require.NoError(t, err)
		require.Len(t, found.Lines, 2)

		// The cart is empty afterwards
		lines, err := cartRepo.FindLines(ctx, cartID)
		require.NoError(t, err)
		assert.Empty(t, lines)
	})

	t.Run("fails with empty cart and creates nothing", func(t *testing.T) {
		db := setupOrderTestDB(t)
		orderRepo := NewGormOrderRepository(db)
		cartID := uuid.New()

		_, err := orderRepo.CommitFromCart(ctx, cartID, buildOrder(cartID, testCustomer(t)))
		assert.ErrorIs(t, err, shared.ErrCartEmpty)

		var count int64
		require.NoError(t, db.Model(&ordering.Order{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("order lines keep the add-time price after a catalog change", func(t *testing.T) {
		db := setupOrderTestDB(t)
		cartRepo := NewGormCartRepository(db)
		orderRepo := NewGormOrderRepository(db)
		cartID := uuid.New()

		mug := seedProduct(t, db, "Mug", "5.00")
		require.NoError(t, cartRepo.AddOrIncrement(ctx, mustLine(t, cartID, mug.ID, 1, "5.00")))

		// Catalog price changes between add and checkout
		require.NoError(t, mug.UpdatePrice(decimal.NewFromFloat(8.75)))
		require.NoError(t, db.Save(mug).Error)

		order, err := orderRepo.CommitFromCart(ctx, cartID, buildOrder(cartID, testCustomer(t)))
		require.NoError(t, err)

		require.Len(t, order.Lines, 1)
		assert.True(t, order.Lines[0].UnitPrice.Equal(decimal.NewFromInt(5)),
			"order must charge the price captured at add time")
	})

	t.Run("rolls back everything when persisting lines fails", func(t *testing.T) {
		db := setupOrderTestDB(t)
		cartRepo := NewGormCartRepository(db)
		orderRepo := NewGormOrderRepository(db)
		cartID := uuid.New()

		mug := seedProduct(t, db, "Mug", "5.00")
		require.NoError(t, cartRepo.AddOrIncrement(ctx, mustLine(t, cartID, mug.ID, 2, "5.00")))

		// Sabotage the line table so the order insert fails mid-commit
		require.NoError(t, db.Migrator().DropTable(&ordering.OrderLine{}))

		_, err := orderRepo.CommitFromCart(ctx, cartID, buildOrder(cartID, testCustomer(t)))
		require.Error(t, err)

		require.NoError(t, db.AutoMigrate(&ordering.OrderLine{}))

		var orders, orderLines int64
		require.NoError(t, db.Model(&ordering.Order{}).Count(&orders).Error)
		require.NoError(t, db.Model(&ordering.OrderLine{}).Count(&orderLines).Error)
		assert.Zero(t, orders, "no order row may survive a failed commit")
		assert.Zero(t, orderLines)

		// The cart is exactly as it was before the attempt
		lines, err := cartRepo.FindLines(ctx, cartID)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, 2, lines[0].Quantity)
	})

	t.Run("second commit of the same cart sees it empty", func(t *testing.T) {
		db := setupOrderTestDB(t)
		cartRepo := NewGormCartRepository(db)
		orderRepo := NewGormOrderRepository(db)
		cartID := uuid.New()

		mug := seedProduct(t, db, "Mug", "5.00")
		require.NoError(t, cartRepo.AddOrIncrement(ctx, mustLine(t, cartID, mug.ID, 1, "5.00")))

		_, err := orderRepo.CommitFromCart(ctx, cartID, buildOrder(cartID, testCustomer(t)))
		require.NoError(t, err)

		_, err = orderRepo.CommitFromCart(ctx, cartID, buildOrder(cartID, testCustomer(t)))
		assert.ErrorIs(t, err, shared.ErrCartEmpty)
	})
}

func TestOrderRepository_FindAll(t *testing.T) {
	db := setupOrderTestDB(t)
	cartRepo := NewGormCartRepository(db)
	orderRepo := NewGormOrderRepository(db)
	ctx := context.Background()
	cartID := uuid.New()

	mug := seedProduct(t, db, "Mug", "5.00")

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		time.Sleep(5 * time.Millisecond)
		require.NoError(t, cartRepo.AddOrIncrement(ctx, mustLine(t, cartID, mug.ID, 1, "5.00")))
		order, err := orderRepo.CommitFromCart(ctx, cartID, buildOrder(cartID, testCustomer(t)))
		require.NoError(t, err)
		ids = append(ids, order.ID)
	}

	orders, err := orderRepo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 3)

	// Newest first
	assert.Equal(t, ids[2], orders[0].ID)
	assert.Equal(t, ids[0], orders[2].ID)
	for _, o := range orders {
		assert.NotEmpty(t, o.Lines)
	}
}

func TestOrderRepository_FindByID(t *testing.T) {
	db := setupOrderTestDB(t)
	orderRepo := NewGormOrderRepository(db)
	ctx := context.Background()

	_, err := orderRepo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
