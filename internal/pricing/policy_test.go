package pricing

import (
	"testing"

	"github.com/libertycherie/storefront-backend/pkg/config"
)

func testPolicy(t *testing.T) *Policy {
	t.Helper()
	p, err := NewPolicy(config.PricingConfig{
		TaxRate:                    "0.14975",
		FreeShippingThresholdCents: 10000,
		FlatShippingFeeCents:       1200,
		Currency:                   "cad",
	})
	if err != nil {
		t.Fatalf("NewPolicy: %v", err)
	}
	return p
}

func TestShippingBoundary(t *testing.T) {
	p := testPolicy(t)

	cases := []struct {
		subtotal int64
		want     int64
	}{
		{0, 1200},
		{9999, 1200},
		{10000, 0}, // exactly at the threshold ships free
		{10001, 0},
	}
	for _, tc := range cases {
		if got := p.Shipping(tc.subtotal); got != tc.want {
			t.Fatalf("Shipping(%d) = %d, want %d", tc.subtotal, got, tc.want)
		}
	}
}

func TestTaxRoundsHalfUp(t *testing.T) {
	p := testPolicy(t)

	// 4500 * 0.14975 = 673.875 -> 674
	if got := p.Tax(4500); got != 674 {
		t.Fatalf("Tax(4500) = %d, want 674", got)
	}
	// 12000 * 0.14975 = 1797 exactly
	if got := p.Tax(12000); got != 1797 {
		t.Fatalf("Tax(12000) = %d, want 1797", got)
	}
}

func TestTotalIsSumOfParts(t *testing.T) {
	p := testPolicy(t)

	for _, subtotal := range []int64{0, 1, 999, 4500, 10000, 123456} {
		want := subtotal + p.Tax(subtotal) + p.Shipping(subtotal)
		if got := p.Total(subtotal); got != want {
			t.Fatalf("Total(%d) = %d, want %d", subtotal, got, want)
		}
	}
}

func TestQuoteScenarios(t *testing.T) {
	p := testPolicy(t)

	// one piece at $45: below the threshold, pays flat shipping
	a := p.Quote(4500)
	if a.TaxCents != 674 || a.ShippingCents != 1200 || a.TotalCents != 6374 {
		t.Fatalf("quote A mismatch: %+v", a)
	}

	// two pieces at $60: over the threshold, ships free
	b := p.Quote(12000)
	if b.TaxCents != 1797 || b.ShippingCents != 0 || b.TotalCents != 13797 {
		t.Fatalf("quote B mismatch: %+v", b)
	}
}

func TestNewPolicyRejectsNegativeFee(t *testing.T) {
	_, err := NewPolicy(config.PricingConfig{TaxRate: "0.1", FlatShippingFeeCents: -1})
	if err == nil {
		t.Fatalf("expected error for negative fee")
	}
}
