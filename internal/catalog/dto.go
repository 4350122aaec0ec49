package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/libertycherie/storefront-backend/pkg/db/models"
	"github.com/libertycherie/storefront-backend/pkg/enums"
)

// ProductDTO is the catalog view returned to the storefront.
type ProductDTO struct {
	ID            uuid.UUID             `json:"id"`
	Slug          string                `json:"slug"`
	Name          string                `json:"name"`
	Description   *string               `json:"description,omitempty"`
	Category      enums.ProductCategory `json:"category"`
	PriceCents    int64                 `json:"price_cents"`
	Currency      string                `json:"currency"`
	ImageURL      *string               `json:"image_url,omitempty"`
	StockQuantity *int                  `json:"stock_quantity,omitempty"`
	InStock       bool                  `json:"in_stock"`
	IsFeatured    bool                  `json:"is_featured"`
	CreatedAt     time.Time             `json:"created_at"`
}

// NewProductDTO maps a catalog row to its storefront view.
func NewProductDTO(product *models.Product) ProductDTO {
	return ProductDTO{
		ID:            product.ID,
		Slug:          product.Slug,
		Name:          product.Name,
		Description:   product.Description,
		Category:      product.Category,
		PriceCents:    product.PriceCents,
		Currency:      product.Currency,
		ImageURL:      product.ImageURL,
		StockQuantity: product.StockQuantity,
		InStock:       product.InStock,
		IsFeatured:    product.IsFeatured,
		CreatedAt:     product.CreatedAt,
	}
}
