package checkout

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v84"
	"gorm.io/gorm"

	"github.com/libertycherie/storefront-backend/internal/pricing"
	"github.com/libertycherie/storefront-backend/pkg/db/models"
	pkgerrors "github.com/libertycherie/storefront-backend/pkg/errors"
	"github.com/libertycherie/storefront-backend/pkg/types"
)

type sessionCreator interface {
	CreateCheckoutSession(ctx context.Context, params *stripe.CheckoutSessionCreateParams) (*stripe.CheckoutSession, error)
}

type productLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// ItemInput is a cart line as submitted by the client. It deliberately carries
// no price: unit prices are always re-read from the catalog.
type ItemInput struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

// Request is the checkout payload.
type Request struct {
	Items    []ItemInput   `json:"items" validate:"required,min=1,dive"`
	Shipping types.Address `json:"shipping" validate:"required"`
}

// Session is what the client needs to hand off to Stripe's hosted page.
type Session struct {
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}

// Service opens Stripe Checkout sessions for validated carts.
type Service interface {
	CreateSession(ctx context.Context, cartToken string, req *Request) (*Session, error)
}

// ServiceParams groups the checkout service dependencies.
type ServiceParams struct {
	Stripe     sessionCreator
	Products   productLoader
	Policy     *pricing.Policy
	SuccessURL string
	CancelURL  string
}

type service struct {
	stripe     sessionCreator
	products   productLoader
	policy     *pricing.Policy
	successURL string
	cancelURL  string
}

// NewService builds the checkout service.
func NewService(params ServiceParams) (Service, error) {
	if params.Stripe == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "stripe client required")
	}
	if params.Products == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "product loader required")
	}
	if params.Policy == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "pricing policy required")
	}
	if params.SuccessURL == "" || params.CancelURL == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "redirect urls required")
	}
	return &service{
		stripe:     params.Stripe,
		products:   params.Products,
		policy:     params.Policy,
		successURL: params.SuccessURL,
		cancelURL:  params.CancelURL,
	}, nil
}

// CreateSession re-prices every submitted line from the catalog, quotes tax
// and shipping, and opens a hosted Checkout session whose metadata carries the
// full order snapshot for the webhook to materialize later.
func (s *service) CreateSession(ctx context.Context, cartToken string, req *Request) (*Session, error) {
	if req == nil || len(req.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "checkout requires at least one item")
	}

	shipping := req.Shipping
	shipping.Normalize()

	snapshot := &Snapshot{
		Shipping:  shipping,
		CartToken: cartToken,
	}
	lineItems := make([]*stripe.CheckoutSessionCreateLineItemParams, 0, len(req.Items)+2)
	var subtotal int64

	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be positive").
				WithDetails(map[string]any{"product_id": item.ProductID})
		}
		product, err := s.loadProduct(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if !product.InStock {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "product is out of stock").
				WithDetails(map[string]any{"product_id": product.ID, "name": product.Name})
		}

		subtotal += product.PriceCents * int64(item.Quantity)
		snapshot.Items = append(snapshot.Items, SnapshotItem{
			ProductID:      product.ID,
			Name:           product.Name,
			UnitPriceCents: product.PriceCents,
			Quantity:       item.Quantity,
			ImageURL:       product.ImageURL,
		})
		lineItems = append(lineItems, s.lineItem(product.Name, product.PriceCents, item.Quantity))
	}

	totals := s.policy.Quote(subtotal)
	snapshot.Totals = totals

	if totals.TaxCents > 0 {
		lineItems = append(lineItems, s.lineItem("Taxes (TPS + TVQ)", totals.TaxCents, 1))
	}
	if totals.ShippingCents > 0 {
		lineItems = append(lineItems, s.lineItem("Shipping", totals.ShippingCents, 1))
	}

	metadata, err := snapshot.Metadata()
	if err != nil {
		return nil, err
	}

	params := &stripe.CheckoutSessionCreateParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:     lineItems,
		SuccessURL:    stripe.String(s.successURL),
		CancelURL:     stripe.String(s.cancelURL),
		CustomerEmail: stripe.String(shipping.Email),
		Metadata:      metadata,
	}

	session, err := s.stripe.CreateCheckoutSession(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create checkout session")
	}
	return &Session{SessionID: session.ID, CheckoutURL: session.URL}, nil
}

func (s *service) lineItem(name string, unitAmountCents int64, quantity int) *stripe.CheckoutSessionCreateLineItemParams {
	return &stripe.CheckoutSessionCreateLineItemParams{
		PriceData: &stripe.CheckoutSessionCreateLineItemPriceDataParams{
			Currency:   stripe.String(s.policy.Currency()),
			UnitAmount: stripe.Int64(unitAmountCents),
			ProductData: &stripe.CheckoutSessionCreateLineItemPriceDataProductDataParams{
				Name: stripe.String(name),
			},
		},
		Quantity: stripe.Int64(int64(quantity)),
	}
}

func (s *service) loadProduct(ctx context.Context, productID uuid.UUID) (*models.Product, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
				WithDetails(map[string]any{"product_id": productID})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}
