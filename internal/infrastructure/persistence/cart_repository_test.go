package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopcore/backend/internal/domain/cart"
	"github.com/shopcore/backend/internal/domain/shared"
)

func TestCartRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCartRepository(db)
	ctx := context.Background()

	customerID := uuid.New()
	productID := uuid.New()

	item, err := cart.NewCartItem(customerID, productID, 2)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, item))

	found, err := repo.FindByCustomerAndProduct(ctx, customerID, productID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, found.ID)
	assert.Equal(t, int64(2), found.Quantity)
}

func TestCartRepository_FindByCustomerAndProduct_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCartRepository(db)

	_, err := repo.FindByCustomerAndProduct(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCartRepository_FindByCustomer(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCartRepository(db)
	ctx := context.Background()

	customerID := uuid.New()
	for i := 0; i < 3; i++ {
		item, err := cart.NewCartItem(customerID, uuid.New(), 1)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, item))
	}
	other, err := cart.NewCartItem(uuid.New(), uuid.New(), 1)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, other))

	items, err := repo.FindByCustomer(ctx, customerID)
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestCartRepository_UpdateQuantity(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCartRepository(db)
	ctx := context.Background()

	item, err := cart.NewCartItem(uuid.New(), uuid.New(), 2)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, item))

	require.NoError(t, item.AddQuantity(3))
	require.NoError(t, repo.Save(ctx, item))

	found, err := repo.FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), found.Quantity)
}

func TestCartRepository_DeleteByCustomer(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCartRepository(db)
	ctx := context.Background()

	customerID := uuid.New()
	item, err := cart.NewCartItem(customerID, uuid.New(), 1)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, item))

	require.NoError(t, repo.DeleteByCustomer(ctx, customerID))

	items, err := repo.FindByCustomer(ctx, customerID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCartRepository_DeleteByProduct(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormCartRepository(db)
	ctx := context.Background()

	productID := uuid.New()
	keep := uuid.New()

	a, err := cart.NewCartItem(uuid.New(), productID, 1)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, a))
	b, err := cart.NewCartItem(uuid.New(), keep, 1)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, b))

	require.NoError(t, repo.DeleteByProduct(ctx, productID))

	_, err = repo.FindByID(ctx, a.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	_, err = repo.FindByID(ctx, b.ID)
	assert.NoError(t, err)
}
