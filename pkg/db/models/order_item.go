package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderItem snapshots one purchased cart line. ProductID is nullable so the
// order survives a later catalog deletion.
type OrderItem struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID        uuid.UUID  `gorm:"column:order_id;type:uuid;not null;index:order_items_order_id_idx"`
	ProductID      *uuid.UUID `gorm:"column:product_id;type:uuid"`
	Name           string     `gorm:"column:name;not null"`
	UnitPriceCents int64      `gorm:"column:unit_price_cents;not null"`
	Quantity       int        `gorm:"column:quantity;not null"`
	ImageURL       *string    `gorm:"column:image_url"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
}
