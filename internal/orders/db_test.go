package orders

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/libertycherie/storefront-backend/pkg/db/models"
	"github.com/libertycherie/storefront-backend/pkg/enums"
	"github.com/libertycherie/storefront-backend/pkg/types"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	ddl := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  stripe_session_id TEXT NOT NULL,
  stripe_payment_intent_id TEXT,
  customer_email TEXT NOT NULL,
  customer_name TEXT NOT NULL,
  customer_phone TEXT,
  shipping_address TEXT,
  subtotal_cents INTEGER NOT NULL,
  tax_cents INTEGER NOT NULL,
  shipping_cents INTEGER NOT NULL,
  total_cents INTEGER NOT NULL,
  currency TEXT NOT NULL DEFAULT 'cad',
  status TEXT NOT NULL DEFAULT 'paid',
  created_at DATETIME,
  updated_at DATETIME,
  CONSTRAINT orders_stripe_session_id_key UNIQUE (stripe_session_id)
);
CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT,
  name TEXT NOT NULL,
  unit_price_cents INTEGER NOT NULL,
  quantity INTEGER NOT NULL,
  image_url TEXT,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(ddl).Error)
	return db
}

func buildTestOrder(sessionID string, mutate func(*models.Order)) *models.Order {
	productID := uuid.New()
	order := &models.Order{
		ID:              uuid.New(),
		StripeSessionID: sessionID,
		CustomerEmail:   "chloe@example.com",
		CustomerName:    "Chloé Martin",
		ShippingAddress: types.Address{
			Email:      "chloe@example.com",
			Name:       "Chloé Martin",
			Line1:      "1 Rue Sainte-Catherine",
			City:       "Montréal",
			State:      "QC",
			PostalCode: "H2X 1K4",
			Country:    "CA",
		},
		SubtotalCents: 4500,
		TaxCents:      674,
		ShippingCents: 1200,
		TotalCents:    6374,
		Currency:      "cad",
		Status:        enums.OrderStatusPaid,
		Items: []models.OrderItem{{
			ID:             uuid.New(),
			ProductID:      &productID,
			Name:           "Satin Corset",
			UnitPriceCents: 4500,
			Quantity:       1,
		}},
	}
	if mutate != nil {
		mutate(order)
	}
	return order
}
