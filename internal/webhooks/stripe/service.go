package stripewebhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/stripe/stripe-go/v84"
	"gorm.io/gorm"

	"github.com/libertycherie/storefront-backend/internal/catalog"
	"github.com/libertycherie/storefront-backend/internal/checkout"
	"github.com/libertycherie/storefront-backend/internal/orders"
	"github.com/libertycherie/storefront-backend/pkg/db/models"
	"github.com/libertycherie/storefront-backend/pkg/enums"
	pkgerrors "github.com/libertycherie/storefront-backend/pkg/errors"
	"github.com/libertycherie/storefront-backend/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type cartClearer interface {
	Delete(ctx context.Context, token string) error
}

// ServiceParams groups the webhook service dependencies.
type ServiceParams struct {
	OrdersRepo        *orders.Repository
	CatalogRepo       *catalog.Repository
	TransactionRunner txRunner
	Carts             cartClearer
	Logger            *logger.Logger
	Currency          string
}

// Service turns verified Stripe events into storefront state. Payment truth
// lives here: an order exists because Stripe said the session completed, not
// because the client claimed to have paid.
type Service struct {
	ordersRepo  *orders.Repository
	catalogRepo *catalog.Repository
	txRunner    txRunner
	carts       cartClearer
	logg        *logger.Logger
	currency    string
}

// NewService builds the webhook service. Carts and Logger are optional.
func NewService(params ServiceParams) (*Service, error) {
	if params.OrdersRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "orders repo required")
	}
	if params.CatalogRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "catalog repo required")
	}
	if params.TransactionRunner == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "transaction runner required")
	}
	currency := params.Currency
	if currency == "" {
		currency = "cad"
	}
	return &Service{
		ordersRepo:  params.OrdersRepo,
		catalogRepo: params.CatalogRepo,
		txRunner:    params.TransactionRunner,
		carts:       params.Carts,
		logg:        params.Logger,
		currency:    currency,
	}, nil
}

// HandleEvent dispatches one verified Stripe event. Returning an error makes
// the HTTP layer answer non-2xx so Stripe redelivers.
func (s *Service) HandleEvent(ctx context.Context, event *stripe.Event) error {
	if event == nil || event.Data == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "stripe event data required")
	}

	switch event.Type {
	case stripe.EventTypeCheckoutSessionCompleted:
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode checkout session event")
		}
		return s.reconcileSession(ctx, &session)
	case stripe.EventTypePaymentIntentSucceeded, stripe.EventTypePaymentIntentPaymentFailed:
		if s.logg != nil {
			s.logg.Info(ctx, fmt.Sprintf("acknowledged %s", event.Type))
		}
		return nil
	default:
		return nil
	}
}

// reconcileSession materializes the order a completed session paid for. The
// insert and the stock decrements commit atomically; a duplicate session id is
// treated as already processed and acknowledged.
func (s *Service) reconcileSession(ctx context.Context, session *stripe.CheckoutSession) error {
	if session == nil || session.ID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "checkout session id required")
	}

	snapshot, err := checkout.SnapshotFromMetadata(session.Metadata)
	if err != nil {
		return err
	}

	order := s.buildOrder(session, snapshot)

	err = s.txRunner.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.ordersRepo.WithTx(tx).Create(ctx, order); err != nil {
			return err
		}
		catalogRepo := s.catalogRepo.WithTx(tx)
		for _, item := range snapshot.Items {
			if err := catalogRepo.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement stock")
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, orders.ErrDuplicateSession) {
			if s.logg != nil {
				s.logg.Info(ctx, fmt.Sprintf("session %s already processed, skipping", session.ID))
			}
			return nil
		}
		return err
	}

	// the server-side cart is stale once the order exists; losing this
	// cleanup only leaves an expiring blob behind
	if s.carts != nil && snapshot.CartToken != "" {
		if err := s.carts.Delete(ctx, snapshot.CartToken); err != nil && s.logg != nil {
			s.logg.Warn(ctx, fmt.Sprintf("clear cart %s: %v", snapshot.CartToken, err))
		}
	}

	if s.logg != nil {
		s.logg.Info(ctx, fmt.Sprintf("order %s recorded for session %s", order.ID, session.ID))
	}
	return nil
}

func (s *Service) buildOrder(session *stripe.CheckoutSession, snapshot *checkout.Snapshot) *models.Order {
	order := &models.Order{
		ID:              uuid.New(),
		StripeSessionID: session.ID,
		CustomerEmail:   snapshot.Shipping.Email,
		CustomerName:    snapshot.Shipping.Name,
		ShippingAddress: snapshot.Shipping,
		SubtotalCents:   snapshot.Totals.SubtotalCents,
		TaxCents:        snapshot.Totals.TaxCents,
		ShippingCents:   snapshot.Totals.ShippingCents,
		TotalCents:      snapshot.Totals.TotalCents,
		Currency:        s.currency,
		Status:          enums.OrderStatusPaid,
	}
	if session.PaymentIntent != nil && session.PaymentIntent.ID != "" {
		intentID := session.PaymentIntent.ID
		order.StripePaymentIntentID = &intentID
	}
	if session.CustomerDetails != nil && session.CustomerDetails.Email != "" {
		order.CustomerEmail = session.CustomerDetails.Email
	}
	if snapshot.Shipping.Phone != "" {
		phone := snapshot.Shipping.Phone
		order.CustomerPhone = &phone
	}
	for _, item := range snapshot.Items {
		productID := item.ProductID
		order.Items = append(order.Items, models.OrderItem{
			ID:             uuid.New(),
			ProductID:      &productID,
			Name:           item.Name,
			UnitPriceCents: item.UnitPriceCents,
			Quantity:       item.Quantity,
			ImageURL:       item.ImageURL,
		})
	}
	return order
}
