package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
)

func setupCartTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&catalog.Product{}, &cart.Line{})
	require.NoError(t, err)

	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name, price string) *catalog.Product {
	t.Helper()
	p, err := decimal.NewFromString(price)
	require.NoError(t, err)
	product, err := catalog.NewProduct(name, "test product", p)
	require.NoError(t, err)
	require.NoError(t, db.Create(product).Error)
	return product
}

func mustLine(t *testing.T, cartID, productID uuid.UUID, qty int, price string) *cart.Line {
	t.Helper()
	p, err := decimal.NewFromString(price)
	require.NoError(t, err)
	line, err := cart.NewLine(cartID, productID, qty, p)
	require.NoError(t, err)
	return line
}

func TestCartRepository_AddOrIncrement(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewGormCartRepository(db)
	ctx := context.Background()
	cartID := uuid.New()

	t.Run("creates a new line", func(t *testing.T) {
		product := seedProduct(t, db, "Mug", "5.00")

		err := repo.AddOrIncrement(ctx, mustLine(t, cartID, product.ID, 2, "5.00"))
		require.NoError(t, err)

		lines, err := repo.FindLines(ctx, cartID)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, 2, lines[0].Quantity)
		assert.True(t, lines[0].UnitPrice.Equal(decimal.NewFromInt(5)))
	})

	t.Run("repeated additions accumulate into one line", func(t *testing.T) {
		db := setupCartTestDB(t)
		repo := NewGormCartRepository(db)
		product := seedProduct(t, db, "Mug", "5.00")

		for i := 0; i < 4; i++ {
			err := repo.AddOrIncrement(ctx, mustLine(t, cartID, product.ID, 1, "5.00"))
			require.NoError(t, err)
		}

		lines, err := repo.FindLines(ctx, cartID)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, 4, lines[0].Quantity)
	})

	t.Run("increment keeps the originally captured price", func(t *testing.T) {
		db := setupCartTestDB(t)
		repo := NewGormCartRepository(db)
		product := seedProduct(t, db, "Mug", "5.00")

		err := repo.AddOrIncrement(ctx, mustLine(t, cartID, product.ID, 1, "5.00"))
		require.NoError(t, err)

		// A later addition arrives with a changed catalog price
		err = repo.AddOrIncrement(ctx, mustLine(t, cartID, product.ID, 1, "9.99"))
		require.NoError(t, err)

		lines, err := repo.FindLines(ctx, cartID)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, 2, lines[0].Quantity)
		assert.True(t, lines[0].UnitPrice.Equal(decimal.NewFromInt(5)),
			"unit price must stay at the add-time value")
	})

	t.Run("different products get separate lines", func(t *testing.T) {
		db := setupCartTestDB(t)
		repo := NewGormCartRepository(db)
		mug := seedProduct(t, db, "Mug", "5.00")
		bowl := seedProduct(t, db, "Bowl", "3.00")

		require.NoError(t, repo.AddOrIncrement(ctx, mustLine(t, cartID, mug.ID, 1, "5.00")))
		require.NoError(t, repo.AddOrIncrement(ctx, mustLine(t, cartID, bowl.ID, 1, "3.00")))

		lines, err := repo.FindLines(ctx, cartID)
		require.NoError(t, err)
		assert.Len(t, lines, 2)
	})
}

func TestCartRepository_Decrement(t *testing.T) {
	ctx := context.Background()
	cartID := uuid.New()

	t.Run("lowers quantity by one", func(t *testing.T) {
		db := setupCartTestDB(t)
		repo := NewGormCartRepository(db)
		product := seedProduct(t, db, "Mug", "5.00")
		require.NoError(t, repo.AddOrIncrement(ctx, mustLine(t, cartID, product.ID, 3, "5.00")))

		err := repo.Decrement(ctx, cartID, product.ID)
		require.NoError(t, err)

		lines, err := repo.FindLines(ctx, cartID)
		require.NoError(t, err)
		require.Len(t, lines, 1)
		assert.Equal(t, 2, lines[0].Quantity)
	})

	t.Run("deletes the line at quantity one", func(t *testing.T) {
		db := setupCartTestDB(t)
		repo := NewGormCartRepository(db)
		product := seedProduct(t, db, "Mug", "5.00")
		require.NoError(t, repo.AddOrIncrement(ctx, mustLine(t, cartID, product.ID, 1, "5.00")))

		err := repo.Decrement(ctx, cartID, product.ID)
		require.NoError(t, err)

		lines, err := repo.FindLines(ctx, cartID)
		require.NoError(t, err)
		assert.Empty(t, lines)
	})

	t.Run("returns not found for a missing line", func(t *testing.T) {
		db := setupCartTestDB(t)
		repo := NewGormCartRepository(db)

		err := repo.Decrement(ctx, cartID, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestCartRepository_Remove(t *testing.T) {
	ctx := context.Background()
	cartID := uuid.New()

	t.Run("removes the line regardless of quantity", func(t *testing.T) {
		db := setupCartTestDB(t)
		repo := NewGormCartRepository(db)
		product := seedProduct(t, db, "Mug", "5.00")
		require.NoError(t, repo.AddOrIncrement(ctx, mustLine(t, cartID, product.ID, 5, "5.00")))

		err := repo.Remove(ctx, cartID, product.ID)
		require.NoError(t, err)

		lines, err := repo.FindLines(ctx, cartID)
		require.NoError(t, err)
		assert.Empty(t, lines)
	})

	t.Run("returns not found for a missing line", func(t *testing.T) {
		db := setupCartTestDB(t)
		repo := NewGormCartRepository(db)

		err := repo.Remove(ctx, cartID, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestCartRepository_FindView(t *testing.T) {
	db := setupCartTestDB(t)
	repo := NewGormCartRepository(db)
	ctx := context.Background()
	cartID := uuid.New()

	product := seedProduct(t, db, "Mug", "5.00")
	product.SetImage("products/mug.png", "https://cdn.example.com/mug.png")
	require.NoError(t, db.Save(product).Error)

	require.NoError(t, repo.AddOrIncrement(ctx, mustLine(t, cartID, product.ID, 2, "5.00")))

	views, err := repo.FindView(ctx, cartID)
	require.NoError(t, err)
	require.Len(t, views, 1)

	assert.Equal(t, product.ID, views[0].ProductID)
	assert.Equal(t, "Mug", views[0].Name)
	assert.Equal(t, "https://cdn.example.com/mug.png", views[0].ImageURL)
	assert.Equal(t, 2, views[0].Quantity)
	assert.True(t, views[0].LineTotal().Equal(decimal.NewFromInt(10)))
}
