package customorders

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/libertycherie/storefront-backend/pkg/db/models"
	"github.com/libertycherie/storefront-backend/pkg/enums"
	pkgerrors "github.com/libertycherie/storefront-backend/pkg/errors"
)

func setupCustomOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	ddl := `
CREATE TABLE IF NOT EXISTS custom_order_requests (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  phone TEXT,
  description TEXT NOT NULL,
  budget_cents INTEGER,
  image_urls TEXT NOT NULL DEFAULT '{}',
  status TEXT NOT NULL DEFAULT 'new',
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(ddl).Error)
	return db
}

func TestSubmitRecordsNewRequest(t *testing.T) {
	db := setupCustomOrdersTestDB(t)
	svc, err := NewService(db)
	require.NoError(t, err)

	budget := int64(25000)
	dto, err := svc.Submit(context.Background(), &Request{
		Name:        "Chloé Martin",
		Email:       "Chloe@Example.com",
		Phone:       " 514-555-0117 ",
		Description: "A structured corset dress for a gallery opening.",
		BudgetCents: &budget,
	})
	require.NoError(t, err)
	assert.Equal(t, enums.CustomOrderStatusNew, dto.Status)

	var stored models.CustomOrderRequest
	require.NoError(t, db.First(&stored, "id = ?", dto.ID).Error)
	assert.Equal(t, "chloe@example.com", stored.Email)
	require.NotNil(t, stored.Phone)
	assert.Equal(t, "514-555-0117", *stored.Phone)
	require.NotNil(t, stored.BudgetCents)
	assert.Equal(t, int64(25000), *stored.BudgetCents)
}

func TestSubmitMissingFields(t *testing.T) {
	svc, err := NewService(setupCustomOrdersTestDB(t))
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), &Request{Name: "Chloé"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestSubmitNegativeBudget(t *testing.T) {
	svc, err := NewService(setupCustomOrdersTestDB(t))
	require.NoError(t, err)

	budget := int64(-1)
	_, err = svc.Submit(context.Background(), &Request{
		Name:        "Chloé Martin",
		Email:       "chloe@example.com",
		Description: "A structured corset dress for a gallery opening.",
		BudgetCents: &budget,
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}
