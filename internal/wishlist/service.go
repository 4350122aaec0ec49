package wishlist

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/libertycherie/storefront-backend/internal/catalog"
	"github.com/libertycherie/storefront-backend/pkg/db/models"
	pkgerrors "github.com/libertycherie/storefront-backend/pkg/errors"
)

type productFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service manages the shopper's liked products.
type Service interface {
	List(ctx context.Context, token string) ([]catalog.ProductDTO, error)
	Add(ctx context.Context, token string, productID uuid.UUID) error
	Remove(ctx context.Context, token string, productID uuid.UUID) error
}

type service struct {
	repo     *Repository
	products productFinder
}

// NewService builds the wishlist service.
func NewService(repo *Repository, products productFinder) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "wishlist repository required")
	}
	if products == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "product loader required")
	}
	return &service{repo: repo, products: products}, nil
}

func (s *service) List(ctx context.Context, token string) ([]catalog.ProductDTO, error) {
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shopper token required")
	}
	products, err := s.repo.ListProducts(ctx, token)
	if err != nil {
		return nil, err
	}
	dtos := make([]catalog.ProductDTO, 0, len(products))
	for i := range products {
		dtos = append(dtos, catalog.NewProductDTO(&products[i]))
	}
	return dtos, nil
}

// Add likes a product. Liking twice is a no-op success.
func (s *service) Add(ctx context.Context, token string, productID uuid.UUID) error {
	if token == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "shopper token required")
	}
	if productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	_, err := s.repo.Add(ctx, token, productID)
	return err
}

// Remove unlikes a product. Removing an absent like is a no-op.
func (s *service) Remove(ctx context.Context, token string, productID uuid.UUID) error {
	if token == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "shopper token required")
	}
	if productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	return s.repo.Remove(ctx, token, productID)
}
