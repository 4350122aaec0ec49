package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/libertycherie/storefront-backend/pkg/enums"
)

// Product represents one catalog listing. Listings are managed by an external
// catalog process; the storefront only reads them, except for the stock
// decrement applied when a paid order is reconciled.
type Product struct {
	ID          uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Slug        string                `gorm:"column:slug;not null;uniqueIndex:products_slug_key"`
	Name        string                `gorm:"column:name;not null"`
	Description *string               `gorm:"column:description"`
	Category    enums.ProductCategory `gorm:"column:category;not null;index:products_category_idx"`
	PriceCents  int64                 `gorm:"column:price_cents;not null"`
	Currency    string                `gorm:"column:currency;not null;default:'cad'"`
	ImageURL    *string               `gorm:"column:image_url"`
	// StockQuantity nil means unlimited stock.
	StockQuantity *int      `gorm:"column:stock_quantity"`
	InStock       bool      `gorm:"column:in_stock;not null;default:true"`
	IsFeatured    bool      `gorm:"column:is_featured;not null;default:false"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
