package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/libertycherie/storefront-backend/internal/pricing"
	"github.com/libertycherie/storefront-backend/pkg/db/models"
	pkgerrors "github.com/libertycherie/storefront-backend/pkg/errors"
)

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service owns the shopper's cart: what they intend to buy, plus derived
// totals. Totals are recomputed on every read from authoritative catalog
// prices, never cached.
type Service interface {
	GetCart(ctx context.Context, token string) (*View, error)
	AddItem(ctx context.Context, token string, productID uuid.UUID, quantity int) (*View, error)
	UpdateQuantity(ctx context.Context, token string, productID uuid.UUID, quantity int) (*View, error)
	RemoveItem(ctx context.Context, token string, productID uuid.UUID) (*View, error)
	ClearCart(ctx context.Context, token string) error
}

// ServiceParams groups the cart service dependencies.
type ServiceParams struct {
	Store    *Store
	Products productLoader
	Policy   *pricing.Policy
}

type service struct {
	store    *Store
	products productLoader
	policy   *pricing.Policy
}

// NewService builds the cart service.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart store required")
	}
	if params.Products == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "product loader required")
	}
	if params.Policy == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "pricing policy required")
	}
	return &service{
		store:    params.Store,
		products: params.Products,
		policy:   params.Policy,
	}, nil
}

func (s *service) GetCart(ctx context.Context, token string) (*View, error) {
	cart, err := s.store.Load(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, cart)
}

// AddItem merges into an existing line for the same product instead of adding
// a second line.
func (s *service) AddItem(ctx context.Context, token string, productID uuid.UUID, quantity int) (*View, error) {
	if quantity <= 0 {
		quantity = 1
	}
	product, err := s.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.InStock {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "product is out of stock")
	}

	cart, err := s.store.Load(ctx, token)
	if err != nil {
		return nil, err
	}

	if i := cart.findLine(productID); i >= 0 {
		cart.Lines[i].Quantity += quantity
	} else {
		cart.Lines = append(cart.Lines, Line{ProductID: productID, Quantity: quantity})
	}

	if err := s.store.Save(ctx, cart); err != nil {
		return nil, err
	}
	return s.buildView(ctx, cart)
}

// UpdateQuantity sets an absolute quantity; zero or less removes the line.
func (s *service) UpdateQuantity(ctx context.Context, token string, productID uuid.UUID, quantity int) (*View, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, token, productID)
	}

	cart, err := s.store.Load(ctx, token)
	if err != nil {
		return nil, err
	}

	i := cart.findLine(productID)
	if i < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not in cart")
	}
	cart.Lines[i].Quantity = quantity

	if err := s.store.Save(ctx, cart); err != nil {
		return nil, err
	}
	return s.buildView(ctx, cart)
}

// RemoveItem deletes the line if present; removing an absent line is a no-op.
func (s *service) RemoveItem(ctx context.Context, token string, productID uuid.UUID) (*View, error) {
	cart, err := s.store.Load(ctx, token)
	if err != nil {
		return nil, err
	}

	if i := cart.findLine(productID); i >= 0 {
		cart.Lines = append(cart.Lines[:i], cart.Lines[i+1:]...)
		if err := s.store.Save(ctx, cart); err != nil {
			return nil, err
		}
	}
	return s.buildView(ctx, cart)
}

// ClearCart empties the cart. Safe to call repeatedly; called once more after
// a confirmed checkout redirect.
func (s *service) ClearCart(ctx context.Context, token string) error {
	return s.store.Delete(ctx, token)
}

func (s *service) loadProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

// buildView joins cart lines with catalog data and recomputes totals. Lines
// whose product no longer exists are pruned and the pruned cart persisted.
func (s *service) buildView(ctx context.Context, cart *Cart) (*View, error) {
	items := make([]ViewItem, 0, len(cart.Lines))
	kept := cart.Lines[:0]
	pruned := false

	for _, line := range cart.Lines {
		product, err := s.products.FindByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				pruned = true
				continue
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}
		kept = append(kept, line)
		items = append(items, ViewItem{
			ProductID:         product.ID,
			Name:              product.Name,
			Slug:              product.Slug,
			UnitPriceCents:    product.PriceCents,
			Quantity:          line.Quantity,
			ImageURL:          product.ImageURL,
			InStock:           product.InStock,
			LineSubtotalCents: product.PriceCents * int64(line.Quantity),
		})
	}
	cart.Lines = kept
	if pruned {
		if err := s.store.Save(ctx, cart); err != nil {
			return nil, err
		}
	}

	var subtotal int64
	for _, item := range items {
		subtotal += item.LineSubtotalCents
	}

	return &View{
		Token:     cart.Token,
		Items:     items,
		ItemCount: cart.ItemCount(),
		Totals:    s.policy.Quote(subtotal),
	}, nil
}
