package wishlist

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/libertycherie/storefront-backend/pkg/db"
	"github.com/libertycherie/storefront-backend/pkg/db/models"
	pkgerrors "github.com/libertycherie/storefront-backend/pkg/errors"
)

const tokenProductConstraint = "wishlist_items_token_product_key"

// Repository is the wishlist persistence layer.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a wishlist repository on the shared connection.
func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{db: conn}
}

// Add records a like. Liking a product twice hits the unique index and is
// reported as already-present, not as an error.
func (r *Repository) Add(ctx context.Context, token string, productID uuid.UUID) (bool, error) {
	item := &models.WishlistItem{
		ID:           uuid.New(),
		ShopperToken: token,
		ProductID:    productID,
	}
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		if db.IsUniqueViolation(err, tokenProductConstraint) {
			return false, nil
		}
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert wishlist item")
	}
	return true, nil
}

// Remove drops a like if present.
func (r *Repository) Remove(ctx context.Context, token string, productID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Where("shopper_token = ? AND product_id = ?", token, productID).
		Delete(&models.WishlistItem{}).Error
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete wishlist item")
	}
	return nil
}

// ListProducts returns the liked products still present in the catalog,
// newest like first.
func (r *Repository) ListProducts(ctx context.Context, token string) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Joins("JOIN wishlist_items ON wishlist_items.product_id = products.id").
		Where("wishlist_items.shopper_token = ?", token).
		Order("wishlist_items.created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list wishlist")
	}
	return products, nil
}
