package orders

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	pkgerrors "github.com/libertycherie/storefront-backend/pkg/errors"
)

// Service exposes the post-checkout order lookup.
type Service interface {
	LookupBySessionID(ctx context.Context, sessionID string) (*OrderDTO, error)
}

type service struct {
	repo *Repository
}

// NewService builds the orders service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "orders repository required")
	}
	return &service{repo: repo}, nil
}

// LookupBySessionID serves the confirmation page after the Stripe redirect.
// The order may not exist yet if the webhook is still in flight; callers get
// NOT_FOUND and retry.
func (s *service) LookupBySessionID(ctx context.Context, sessionID string) (*OrderDTO, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id required")
	}

	order, err := s.repo.FindByStripeSessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	dto := newOrderDTO(order)
	return &dto, nil
}
