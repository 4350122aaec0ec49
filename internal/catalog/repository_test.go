package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libertycherie/storefront-backend/pkg/db/models"
	"github.com/libertycherie/storefront-backend/pkg/enums"
)

func TestListFiltersByCategoryAndFeatured(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	mustCreateTestProduct(t, db, nil)
	mustCreateTestProduct(t, db, func(p *models.Product) {
		p.Category = enums.CategoryDresses
		p.IsFeatured = true
	})

	dresses, err := repo.List(ctx, ListFilters{Category: enums.CategoryDresses})
	require.NoError(t, err)
	require.Len(t, dresses, 1)
	assert.Equal(t, enums.CategoryDresses, dresses[0].Category)

	featured := true
	got, err := repo.List(ctx, ListFilters{Featured: &featured})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].IsFeatured)
}

func TestDecrementStockFloorsAtZero(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	product := mustCreateTestProduct(t, db, nil) // stock 5

	require.NoError(t, repo.DecrementStock(ctx, product.ID, 3))
	fetched, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.StockQuantity)
	assert.Equal(t, 2, *fetched.StockQuantity)
	assert.True(t, fetched.InStock)

	// oversell: floor at zero and flip the flag, never negative
	require.NoError(t, repo.DecrementStock(ctx, product.ID, 10))
	fetched, err = repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, *fetched.StockQuantity)
	assert.False(t, fetched.InStock)
}

func TestDecrementStockSkipsUnlimitedProducts(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	product := mustCreateTestProduct(t, db, func(p *models.Product) {
		p.StockQuantity = nil
	})

	require.NoError(t, repo.DecrementStock(ctx, product.ID, 4))
	fetched, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Nil(t, fetched.StockQuantity)
	assert.True(t, fetched.InStock)
}

func TestFindBySlug(t *testing.T) {
	db := setupCatalogTestDB(t)
	repo := NewRepository(db)

	product := mustCreateTestProduct(t, db, func(p *models.Product) {
		p.Slug = "velvet-dream"
	})

	fetched, err := repo.FindBySlug(context.Background(), "velvet-dream")
	require.NoError(t, err)
	assert.Equal(t, product.ID, fetched.ID)
}
