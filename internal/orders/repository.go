package orders

import (
	"context"

	"gorm.io/gorm"

	"github.com/libertycherie/storefront-backend/pkg/db"
	"github.com/libertycherie/storefront-backend/pkg/db/models"
	pkgerrors "github.com/libertycherie/storefront-backend/pkg/errors"
)

const sessionIDConstraint = "orders_stripe_session_id_key"

// ErrDuplicateSession marks an insert that lost the race against another
// delivery of the same Stripe session. Callers treat it as "already processed".
var ErrDuplicateSession = pkgerrors.New(pkgerrors.CodeConflict, "order already recorded for session")

// Repository is the orders persistence layer.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository on the shared connection.
func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{db: conn}
}

// WithTx rebinds the repository to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// Create inserts the order with its items. The unique index on
// stripe_session_id turns a concurrent duplicate into ErrDuplicateSession.
func (r *Repository) Create(ctx context.Context, order *models.Order) error {
	if order == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order required")
	}
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		if db.IsUniqueViolation(err, sessionIDConstraint) {
			return ErrDuplicateSession
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert order")
	}
	return nil
}

// FindByStripeSessionID loads an order with its items.
func (r *Repository) FindByStripeSessionID(ctx context.Context, sessionID string) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("stripe_session_id = ?", sessionID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}
