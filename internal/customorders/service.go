package customorders

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/libertycherie/storefront-backend/pkg/db/models"
	"github.com/libertycherie/storefront-backend/pkg/enums"
	pkgerrors "github.com/libertycherie/storefront-backend/pkg/errors"
)

// Request is the made-to-measure inquiry payload.
type Request struct {
	Name        string   `json:"name" validate:"required"`
	Email       string   `json:"email" validate:"required,email"`
	Phone       string   `json:"phone,omitempty"`
	Description string   `json:"description" validate:"required,min=10"`
	BudgetCents *int64   `json:"budget_cents,omitempty" validate:"omitempty,min=0"`
	ImageURLs   []string `json:"image_urls,omitempty" validate:"omitempty,dive,url"`
}

// RequestDTO confirms a recorded inquiry.
type RequestDTO struct {
	ID        uuid.UUID               `json:"id"`
	Status    enums.CustomOrderStatus `json:"status"`
	CreatedAt time.Time               `json:"created_at"`
}

// Service records custom-order inquiries. Quoting happens off-platform.
type Service interface {
	Submit(ctx context.Context, req *Request) (*RequestDTO, error)
}

type service struct {
	db *gorm.DB
}

// NewService builds the custom-orders service.
func NewService(conn *gorm.DB) (Service, error) {
	if conn == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "db connection required")
	}
	return &service{db: conn}, nil
}

// Submit persists the inquiry with status "new".
func (s *service) Submit(ctx context.Context, req *Request) (*RequestDTO, error) {
	if req == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "request required")
	}
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	description := strings.TrimSpace(req.Description)
	if name == "" || email == "" || description == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name, email and description are required")
	}
	if req.BudgetCents != nil && *req.BudgetCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "budget must be non-negative")
	}

	record := &models.CustomOrderRequest{
		ID:          uuid.New(),
		Name:        name,
		Email:       email,
		Description: description,
		BudgetCents: req.BudgetCents,
		ImageURLs:   pq.StringArray(req.ImageURLs),
		Status:      enums.CustomOrderStatusNew,
	}
	if record.ImageURLs == nil {
		record.ImageURLs = pq.StringArray{}
	}
	if phone := strings.TrimSpace(req.Phone); phone != "" {
		record.Phone = &phone
	}

	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert custom order request")
	}
	return &RequestDTO{ID: record.ID, Status: record.Status, CreatedAt: record.CreatedAt}, nil
}
