package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/libertycherie/storefront-backend/pkg/db/models"
	"github.com/libertycherie/storefront-backend/pkg/enums"
)

// ListFilters narrows the catalog browse query.
type ListFilters struct {
	Category enums.ProductCategory
	Featured *bool
	Limit    int
	Offset   int
}

const (
	defaultListLimit = 24
	maxListLimit     = 100
)

// Repository is the catalog persistence layer.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository on the shared connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx rebinds the repository to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// List returns catalog products matching the filters, newest first.
func (r *Repository) List(ctx context.Context, filters ListFilters) ([]models.Product, error) {
	limit := filters.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	query := r.db.WithContext(ctx).Model(&models.Product{})
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Featured != nil {
		query = query.Where("is_featured = ?", *filters.Featured)
	}

	var products []models.Product
	err := query.
		Order("created_at DESC").
		Limit(limit).
		Offset(filters.Offset).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// FindByID loads one product.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindBySlug loads one product by its URL slug.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// DecrementStock subtracts qty from a product's stock, flooring at zero, and
// recomputes the in-stock flag in the same statement. Products with null stock
// are unlimited and left untouched.
func (r *Repository) DecrementStock(ctx context.Context, productID uuid.UUID, qty int) error {
	if qty <= 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND stock_quantity IS NOT NULL", productID).
		Updates(map[string]any{
			// CASE keeps the statement portable between Postgres and the
			// sqlite test database.
			"stock_quantity": gorm.Expr("CASE WHEN stock_quantity - ? < 0 THEN 0 ELSE stock_quantity - ? END", qty, qty),
			"in_stock":       gorm.Expr("stock_quantity - ? > 0", qty),
		}).Error
}
