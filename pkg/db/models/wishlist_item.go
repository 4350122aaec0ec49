package models

import (
	"time"

	"github.com/google/uuid"
)

// WishlistItem links an anonymous shopper token to a liked product.
type WishlistItem struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ShopperToken string    `gorm:"column:shopper_token;not null;index:wishlist_items_token_idx;uniqueIndex:wishlist_items_token_product_key"`
	ProductID    uuid.UUID `gorm:"column:product_id;type:uuid;not null;uniqueIndex:wishlist_items_token_product_key"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}
