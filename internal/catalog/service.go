package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/libertycherie/storefront-backend/pkg/errors"
)

// Service exposes read access to the catalog.
type Service interface {
	ListProducts(ctx context.Context, filters ListFilters) ([]ProductDTO, error)
	GetProduct(ctx context.Context, idOrSlug string) (*ProductDTO, error)
}

type service struct {
	repo *Repository
}

// NewService builds the catalog service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListProducts(ctx context.Context, filters ListFilters) ([]ProductDTO, error) {
	products, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	dtos := make([]ProductDTO, 0, len(products))
	for i := range products {
		dtos = append(dtos, NewProductDTO(&products[i]))
	}
	return dtos, nil
}

// GetProduct resolves the argument as a product id first, then as a slug.
func (s *service) GetProduct(ctx context.Context, idOrSlug string) (*ProductDTO, error) {
	if idOrSlug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id or slug required")
	}

	var err error
	if id, parseErr := uuid.Parse(idOrSlug); parseErr == nil {
		var product *ProductDTO
		product, err = s.findByID(ctx, id)
		if err == nil {
			return product, nil
		}
	} else {
		err = gorm.ErrRecordNotFound
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		product, slugErr := s.repo.FindBySlug(ctx, idOrSlug)
		if slugErr != nil {
			if errors.Is(slugErr, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, slugErr, "load product")
		}
		dto := NewProductDTO(product)
		return &dto, nil
	}
	return nil, err
}

func (s *service) findByID(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	dto := NewProductDTO(product)
	return &dto, nil
}
