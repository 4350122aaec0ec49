package models

import (
	"time"

	"github.com/google/uuid"
)

// NewsletterSubscriber is one signup; email is unique so re-subscribing is a
// no-op.
type NewsletterSubscriber struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email     string    `gorm:"column:email;not null;uniqueIndex:newsletter_subscribers_email_key"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
