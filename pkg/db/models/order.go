package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/libertycherie/storefront-backend/pkg/enums"
	"github.com/libertycherie/storefront-backend/pkg/types"
)

// Order is materialized exclusively by the Stripe webhook handler, never by
// the client. The unique index on stripe_session_id is what makes duplicate
// webhook deliveries collapse into a single row.
type Order struct {
	ID                    uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StripeSessionID       string            `gorm:"column:stripe_session_id;not null;uniqueIndex:orders_stripe_session_id_key"`
	StripePaymentIntentID *string           `gorm:"column:stripe_payment_intent_id"`
	CustomerEmail         string            `gorm:"column:customer_email;not null"`
	CustomerName          string            `gorm:"column:customer_name;not null"`
	CustomerPhone         *string           `gorm:"column:customer_phone"`
	ShippingAddress       types.Address     `gorm:"column:shipping_address;type:jsonb;serializer:json"`
	SubtotalCents         int64             `gorm:"column:subtotal_cents;not null"`
	TaxCents              int64             `gorm:"column:tax_cents;not null"`
	ShippingCents         int64             `gorm:"column:shipping_cents;not null"`
	TotalCents            int64             `gorm:"column:total_cents;not null"`
	Currency              string            `gorm:"column:currency;not null;default:'cad'"`
	Status                enums.OrderStatus `gorm:"column:status;not null;default:'paid'"`
	Items                 []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt             time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt             time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
