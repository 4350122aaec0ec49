package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/libertycherie/storefront-backend/pkg/enums"
)

// CustomOrderRequest captures a made-to-measure inquiry from the storefront.
// Quoting and the deposit policy are handled off-platform; intake only records
// the request.
type CustomOrderRequest struct {
	ID          uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string                  `gorm:"column:name;not null"`
	Email       string                  `gorm:"column:email;not null"`
	Phone       *string                 `gorm:"column:phone"`
	Description string                  `gorm:"column:description;not null"`
	BudgetCents *int64                  `gorm:"column:budget_cents"`
	ImageURLs   pq.StringArray          `gorm:"column:image_urls;type:text[];not null;default:'{}'"`
	Status      enums.CustomOrderStatus `gorm:"column:status;not null;default:'new'"`
	CreatedAt   time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
