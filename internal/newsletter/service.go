package newsletter

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/libertycherie/storefront-backend/pkg/db"
	"github.com/libertycherie/storefront-backend/pkg/db/models"
	pkgerrors "github.com/libertycherie/storefront-backend/pkg/errors"
)

const emailConstraint = "newsletter_subscribers_email_key"

// SubscribeRequest is the signup payload.
type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Service records newsletter signups.
type Service interface {
	Subscribe(ctx context.Context, req *SubscribeRequest) error
}

type service struct {
	db *gorm.DB
}

// NewService builds the newsletter service.
func NewService(conn *gorm.DB) (Service, error) {
	if conn == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "db connection required")
	}
	return &service{db: conn}, nil
}

// Subscribe stores the email. Subscribing an address that is already on the
// list succeeds silently; the unique index absorbs the duplicate.
func (s *service) Subscribe(ctx context.Context, req *SubscribeRequest) error {
	if req == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "email required")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "email required")
	}

	subscriber := &models.NewsletterSubscriber{
		ID:    uuid.New(),
		Email: email,
	}
	if err := s.db.WithContext(ctx).Create(subscriber).Error; err != nil {
		if db.IsUniqueViolation(err, emailConstraint) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert subscriber")
	}
	return nil
}
