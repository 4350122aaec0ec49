package cart

import (
	"time"

	"github.com/google/uuid"

	"github.com/libertycherie/storefront-backend/internal/pricing"
)

// Line is one product entry in a shopper's cart. At most one line exists per
// product id; quantity is always >= 1.
type Line struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// Cart is the persisted shape, a token-keyed blob in Redis. The token plays
// the role the browser's device storage played for the old client-side store:
// it survives reloads and carries no identity beyond itself.
type Cart struct {
	Token     string    `json:"token"`
	Lines     []Line    `json:"lines"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ItemCount sums quantities across lines (the header badge number).
func (c *Cart) ItemCount() int {
	total := 0
	for _, line := range c.Lines {
		total += line.Quantity
	}
	return total
}

func (c *Cart) findLine(productID uuid.UUID) int {
	for i, line := range c.Lines {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}

// ViewItem is a cart line joined with its catalog snapshot for display.
type ViewItem struct {
	ProductID         uuid.UUID `json:"product_id"`
	Name              string    `json:"name"`
	Slug              string    `json:"slug"`
	UnitPriceCents    int64     `json:"unit_price_cents"`
	Quantity          int       `json:"quantity"`
	ImageURL          *string   `json:"image_url,omitempty"`
	InStock           bool      `json:"in_stock"`
	LineSubtotalCents int64     `json:"line_subtotal_cents"`
}

// View is the derived read model: current lines plus recomputed totals.
type View struct {
	Token     string         `json:"token"`
	Items     []ViewItem     `json:"items"`
	ItemCount int            `json:"item_count"`
	Totals    pricing.Totals `json:"totals"`
}
