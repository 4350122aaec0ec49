package stripewebhook

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v84"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/libertycherie/storefront-backend/internal/catalog"
	"github.com/libertycherie/storefront-backend/internal/checkout"
	"github.com/libertycherie/storefront-backend/internal/orders"
	"github.com/libertycherie/storefront-backend/internal/pricing"
	"github.com/libertycherie/storefront-backend/pkg/db/models"
	"github.com/libertycherie/storefront-backend/pkg/enums"
	pkgerrors "github.com/libertycherie/storefront-backend/pkg/errors"
	"github.com/libertycherie/storefront-backend/pkg/types"
)

type testTxRunner struct {
	db *gorm.DB
}

func (r *testTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

type recordingCartClearer struct {
	tokens []string
}

func (r *recordingCartClearer) Delete(_ context.Context, token string) error {
	r.tokens = append(r.tokens, token)
	return nil
}

func setupWebhookTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	ddl := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  slug TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  description TEXT,
  category TEXT NOT NULL,
  price_cents INTEGER NOT NULL,
  currency TEXT NOT NULL DEFAULT 'cad',
  image_url TEXT,
  stock_quantity INTEGER,
  in_stock INTEGER NOT NULL DEFAULT 1,
  is_featured INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);
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
	if err := db.Exec(ddl).Error; err != nil {
		t.Fatalf("create tables: %v", err)
	}
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, stock *int) *models.Product {
	t.Helper()

	product := &models.Product{
		ID:            uuid.New(),
		Slug:          "corset-" + uuid.NewString()[:8],
		Name:          "Satin Corset",
		Category:      enums.CategoryCorsets,
		PriceCents:    4500,
		Currency:      "cad",
		StockQuantity: stock,
		InStock:       true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product
}

func setupWebhookService(t *testing.T, db *gorm.DB, carts cartClearer) *Service {
	t.Helper()

	svc, err := NewService(ServiceParams{
		OrdersRepo:        orders.NewRepository(db),
		CatalogRepo:       catalog.NewRepository(db),
		TransactionRunner: &testTxRunner{db: db},
		Carts:             carts,
		Currency:          "cad",
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func completedSessionEvent(t *testing.T, sessionID string, snap *checkout.Snapshot) *stripe.Event {
	t.Helper()

	meta, err := snap.Metadata()
	if err != nil {
		t.Fatalf("snapshot metadata: %v", err)
	}
	raw, err := json.Marshal(map[string]any{
		"id":       sessionID,
		"metadata": meta,
	})
	if err != nil {
		t.Fatalf("marshal session: %v", err)
	}
	return &stripe.Event{
		ID:   "evt_" + sessionID,
		Type: stripe.EventTypeCheckoutSessionCompleted,
		Data: &stripe.EventData{Raw: raw},
	}
}

func testSnapshot(product *models.Product, quantity int) *checkout.Snapshot {
	subtotal := product.PriceCents * int64(quantity)
	return &checkout.Snapshot{
		Items: []checkout.SnapshotItem{{
			ProductID:      product.ID,
			Name:           product.Name,
			UnitPriceCents: product.PriceCents,
			Quantity:       quantity,
		}},
		Shipping: types.Address{
			Email:      "chloe@example.com",
			Name:       "Chloé Martin",
			Line1:      "1 Rue Sainte-Catherine",
			City:       "Montréal",
			State:      "QC",
			PostalCode: "H2X 1K4",
			Country:    "CA",
		},
		Totals: pricing.Totals{
			SubtotalCents: subtotal,
			TaxCents:      674,
			ShippingCents: 1200,
			TotalCents:    subtotal + 674 + 1200,
		},
		CartToken: "tok-webhook",
	}
}

func TestCompletedSessionCreatesOrderAndDecrementsStock(t *testing.T) {
	db := setupWebhookTestDB(t)
	stock := 5
	product := seedProduct(t, db, &stock)
	carts := &recordingCartClearer{}
	svc := setupWebhookService(t, db, carts)

	event := completedSessionEvent(t, "cs_test_one", testSnapshot(product, 2))
	if err := svc.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}

	order, err := orders.NewRepository(db).FindByStripeSessionID(context.Background(), "cs_test_one")
	if err != nil {
		t.Fatalf("find order: %v", err)
	}
	if order.CustomerEmail != "chloe@example.com" || order.Status != enums.OrderStatusPaid {
		t.Fatalf("unexpected order %+v", order)
	}
	if len(order.Items) != 1 || order.Items[0].Quantity != 2 {
		t.Fatalf("unexpected items %+v", order.Items)
	}

	var got models.Product
	if err := db.First(&got, "id = ?", product.ID).Error; err != nil {
		t.Fatalf("load product: %v", err)
	}
	if got.StockQuantity == nil || *got.StockQuantity != 3 {
		t.Fatalf("stock = %v, want 3", got.StockQuantity)
	}
	if !got.InStock {
		t.Fatalf("product should remain in stock")
	}

	if len(carts.tokens) != 1 || carts.tokens[0] != "tok-webhook" {
		t.Fatalf("expected cart cleared for tok-webhook, got %v", carts.tokens)
	}
}

func TestDuplicateDeliveryCreatesOneOrder(t *testing.T) {
	db := setupWebhookTestDB(t)
	stock := 5
	product := seedProduct(t, db, &stock)
	svc := setupWebhookService(t, db, nil)
	ctx := context.Background()

	event := completedSessionEvent(t, "cs_test_dup", testSnapshot(product, 1))
	if err := svc.HandleEvent(ctx, event); err != nil {
		t.Fatalf("first delivery: %v", err)
	}
	if err := svc.HandleEvent(ctx, event); err != nil {
		t.Fatalf("second delivery should be acknowledged, got %v", err)
	}

	var count int64
	if err := db.Table("orders").Count(&count).Error; err != nil {
		t.Fatalf("count orders: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one order, got %d", count)
	}

	// the duplicate rolled back before touching stock again
	var got models.Product
	if err := db.First(&got, "id = ?", product.ID).Error; err != nil {
		t.Fatalf("load product: %v", err)
	}
	if got.StockQuantity == nil || *got.StockQuantity != 4 {
		t.Fatalf("stock = %v, want 4", got.StockQuantity)
	}
}

func TestStockFloorsAtZero(t *testing.T) {
	db := setupWebhookTestDB(t)
	stock := 1
	product := seedProduct(t, db, &stock)
	svc := setupWebhookService(t, db, nil)

	event := completedSessionEvent(t, "cs_test_floor", testSnapshot(product, 3))
	if err := svc.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}

	var got models.Product
	if err := db.First(&got, "id = ?", product.ID).Error; err != nil {
		t.Fatalf("load product: %v", err)
	}
	if got.StockQuantity == nil || *got.StockQuantity != 0 {
		t.Fatalf("stock = %v, want 0", got.StockQuantity)
	}
	if got.InStock {
		t.Fatalf("product should be marked out of stock")
	}
}

func TestUnlimitedStockIsNotDecremented(t *testing.T) {
	db := setupWebhookTestDB(t)
	product := seedProduct(t, db, nil)
	svc := setupWebhookService(t, db, nil)

	event := completedSessionEvent(t, "cs_test_unlimited", testSnapshot(product, 4))
	if err := svc.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("HandleEvent: %v", err)
	}

	var got models.Product
	if err := db.First(&got, "id = ?", product.ID).Error; err != nil {
		t.Fatalf("load product: %v", err)
	}
	if got.StockQuantity != nil {
		t.Fatalf("unlimited stock should stay null, got %v", *got.StockQuantity)
	}
	if !got.InStock {
		t.Fatalf("unlimited product should stay in stock")
	}
}

func TestPaymentIntentEventsAreAcknowledged(t *testing.T) {
	db := setupWebhookTestDB(t)
	svc := setupWebhookService(t, db, nil)

	event := &stripe.Event{
		ID:   "evt_pi",
		Type: stripe.EventTypePaymentIntentSucceeded,
		Data: &stripe.EventData{Raw: json.RawMessage(`{}`)},
	}
	if err := svc.HandleEvent(context.Background(), event); err != nil {
		t.Fatalf("expected ack, got %v", err)
	}

	var count int64
	if err := db.Table("orders").Count(&count).Error; err != nil {
		t.Fatalf("count orders: %v", err)
	}
	if count != 0 {
		t.Fatalf("payment_intent events must not create orders")
	}
}

func TestMissingMetadataRejected(t *testing.T) {
	db := setupWebhookTestDB(t)
	svc := setupWebhookService(t, db, nil)

	event := &stripe.Event{
		ID:   "evt_meta",
		Type: stripe.EventTypeCheckoutSessionCompleted,
		Data: &stripe.EventData{Raw: json.RawMessage(`{"id":"cs_test_meta"}`)},
	}
	err := svc.HandleEvent(context.Background(), event)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}
