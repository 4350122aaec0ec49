package checkout

import (
	"encoding/json"
	"strconv"

	"github.com/google/uuid"

	"github.com/libertycherie/storefront-backend/internal/pricing"
	pkgerrors "github.com/libertycherie/storefront-backend/pkg/errors"
	"github.com/libertycherie/storefront-backend/pkg/types"
)

// Metadata keys written onto the Stripe Checkout session. The webhook handler
// reads the same keys back, so the session itself carries everything needed to
// materialize the order.
const (
	metaKeyItems         = "items"
	metaKeyShipping      = "shipping"
	metaKeyCartToken     = "cart_token"
	metaKeySubtotalCents = "subtotal_cents"
	metaKeyTaxCents      = "tax_cents"
	metaKeyShippingCents = "shipping_cents"
	metaKeyTotalCents    = "total_cents"
)

// SnapshotItem is one purchased line frozen at session-creation time. Prices
// here are the catalog prices the session was built from, so the order records
// what was actually charged even if the catalog changes afterwards.
type SnapshotItem struct {
	ProductID      uuid.UUID `json:"product_id"`
	Name           string    `json:"name"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	Quantity       int       `json:"quantity"`
	ImageURL       *string   `json:"image_url,omitempty"`
}

// Snapshot is the full order payload round-tripped through session metadata.
type Snapshot struct {
	Items     []SnapshotItem
	Shipping  types.Address
	Totals    pricing.Totals
	CartToken string
}

// Metadata encodes the snapshot into Stripe's string-to-string metadata map.
func (s *Snapshot) Metadata() (map[string]string, error) {
	items, err := json.Marshal(s.Items)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode items")
	}
	shipping, err := json.Marshal(s.Shipping)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode shipping")
	}
	return map[string]string{
		metaKeyItems:         string(items),
		metaKeyShipping:      string(shipping),
		metaKeyCartToken:     s.CartToken,
		metaKeySubtotalCents: strconv.FormatInt(s.Totals.SubtotalCents, 10),
		metaKeyTaxCents:      strconv.FormatInt(s.Totals.TaxCents, 10),
		metaKeyShippingCents: strconv.FormatInt(s.Totals.ShippingCents, 10),
		metaKeyTotalCents:    strconv.FormatInt(s.Totals.TotalCents, 10),
	}, nil
}

// SnapshotFromMetadata decodes a session metadata map written by Metadata.
func SnapshotFromMetadata(meta map[string]string) (*Snapshot, error) {
	if len(meta) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session metadata missing")
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(meta[metaKeyItems]), &snap.Items); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode items metadata")
	}
	if len(snap.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session metadata has no items")
	}
	if err := json.Unmarshal([]byte(meta[metaKeyShipping]), &snap.Shipping); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode shipping metadata")
	}
	snap.CartToken = meta[metaKeyCartToken]

	var err error
	if snap.Totals.SubtotalCents, err = parseCents(meta, metaKeySubtotalCents); err != nil {
		return nil, err
	}
	if snap.Totals.TaxCents, err = parseCents(meta, metaKeyTaxCents); err != nil {
		return nil, err
	}
	if snap.Totals.ShippingCents, err = parseCents(meta, metaKeyShippingCents); err != nil {
		return nil, err
	}
	if snap.Totals.TotalCents, err = parseCents(meta, metaKeyTotalCents); err != nil {
		return nil, err
	}
	return &snap, nil
}

func parseCents(meta map[string]string, key string) (int64, error) {
	cents, err := strconv.ParseInt(meta[key], 10, 64)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode "+key+" metadata")
	}
	return cents, nil
}
