package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/libertycherie/storefront-backend/pkg/db/models"
	"github.com/libertycherie/storefront-backend/pkg/enums"
	"github.com/libertycherie/storefront-backend/pkg/types"
)

// ItemDTO is one purchased line on the confirmation view.
type ItemDTO struct {
	ProductID      *uuid.UUID `json:"product_id,omitempty"`
	Name           string     `json:"name"`
	UnitPriceCents int64      `json:"unit_price_cents"`
	Quantity       int        `json:"quantity"`
	ImageURL       *string    `json:"image_url,omitempty"`
}

// OrderDTO is the confirmation-page view of a reconciled order.
type OrderDTO struct {
	ID              uuid.UUID         `json:"id"`
	StripeSessionID string            `json:"stripe_session_id"`
	CustomerEmail   string            `json:"customer_email"`
	CustomerName    string            `json:"customer_name"`
	ShippingAddress types.Address     `json:"shipping_address"`
	SubtotalCents   int64             `json:"subtotal_cents"`
	TaxCents        int64             `json:"tax_cents"`
	ShippingCents   int64             `json:"shipping_cents"`
	TotalCents      int64             `json:"total_cents"`
	Currency        string            `json:"currency"`
	Status          enums.OrderStatus `json:"status"`
	Items           []ItemDTO         `json:"items"`
	CreatedAt       time.Time         `json:"created_at"`
}

func newOrderDTO(order *models.Order) OrderDTO {
	items := make([]ItemDTO, 0, len(order.Items))
	for i := range order.Items {
		item := &order.Items[i]
		items = append(items, ItemDTO{
			ProductID:      item.ProductID,
			Name:           item.Name,
			UnitPriceCents: item.UnitPriceCents,
			Quantity:       item.Quantity,
			ImageURL:       item.ImageURL,
		})
	}
	return OrderDTO{
		ID:              order.ID,
		StripeSessionID: order.StripeSessionID,
		CustomerEmail:   order.CustomerEmail,
		CustomerName:    order.CustomerName,
		ShippingAddress: order.ShippingAddress,
		SubtotalCents:   order.SubtotalCents,
		TaxCents:        order.TaxCents,
		ShippingCents:   order.ShippingCents,
		TotalCents:      order.TotalCents,
		Currency:        order.Currency,
		Status:          order.Status,
		Items:           items,
		CreatedAt:       order.CreatedAt,
	}
}
