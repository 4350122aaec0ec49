package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateAndFindBySessionID(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := buildTestOrder("cs_test_abc", nil)
	require.NoError(t, repo.Create(ctx, order))

	found, err := repo.FindByStripeSessionID(ctx, "cs_test_abc")
	require.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)
	assert.Equal(t, int64(6374), found.TotalCents)
	assert.Equal(t, "Montréal", found.ShippingAddress.City)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "Satin Corset", found.Items[0].Name)
}

func TestCreateDuplicateSessionID(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, buildTestOrder("cs_test_dup", nil)))

	err := repo.Create(ctx, buildTestOrder("cs_test_dup", nil))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateSession) || err == ErrDuplicateSession)

	var count int64
	require.NoError(t, db.Table("orders").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFindBySessionIDMissing(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	_, err := repo.FindByStripeSessionID(context.Background(), "cs_test_missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
