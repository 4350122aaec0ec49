package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/libertycherie/storefront-backend/pkg/config"
	pkgerrors "github.com/libertycherie/storefront-backend/pkg/errors"
)

// Policy computes tax and shipping from a cart subtotal. All amounts are
// integer cents; the tax rate is decimal so a rate like 0.14975 never drifts.
type Policy struct {
	taxRate            decimal.Decimal
	freeShippingCutoff int64
	flatShippingFee    int64
	currency           string
}

// Totals is the derived money view of a cart. Never persisted, always
// recomputed from the current lines.
type Totals struct {
	SubtotalCents int64 `json:"subtotal_cents"`
	TaxCents      int64 `json:"tax_cents"`
	ShippingCents int64 `json:"shipping_cents"`
	TotalCents    int64 `json:"total_cents"`
}

// NewPolicy builds a policy from configuration.
func NewPolicy(cfg config.PricingConfig) (*Policy, error) {
	rate, err := cfg.Rate()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "parse tax rate")
	}
	if cfg.FreeShippingThresholdCents < 0 || cfg.FlatShippingFeeCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "shipping amounts must be non-negative")
	}
	return &Policy{
		taxRate:            rate,
		freeShippingCutoff: cfg.FreeShippingThresholdCents,
		flatShippingFee:    cfg.FlatShippingFeeCents,
		currency:           cfg.Currency,
	}, nil
}

// Tax returns the tax on a subtotal, rounded half-up to the cent.
func (p *Policy) Tax(subtotalCents int64) int64 {
	return decimal.NewFromInt(subtotalCents).Mul(p.taxRate).Round(0).IntPart()
}

// Shipping is free at or above the threshold, otherwise the flat fee.
func (p *Policy) Shipping(subtotalCents int64) int64 {
	if subtotalCents >= p.freeShippingCutoff {
		return 0
	}
	return p.flatShippingFee
}

// Total is subtotal + tax + shipping.
func (p *Policy) Total(subtotalCents int64) int64 {
	return subtotalCents + p.Tax(subtotalCents) + p.Shipping(subtotalCents)
}

// Quote bundles all derived amounts for a subtotal.
func (p *Policy) Quote(subtotalCents int64) Totals {
	tax := p.Tax(subtotalCents)
	shipping := p.Shipping(subtotalCents)
	return Totals{
		SubtotalCents: subtotalCents,
		TaxCents:      tax,
		ShippingCents: shipping,
		TotalCents:    subtotalCents + tax + shipping,
	}
}

// Currency reports the storefront currency code (lowercase, e.g. "cad").
func (p *Policy) Currency() string {
	return p.currency
}
