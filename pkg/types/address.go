package types

import "strings"

// Address is the shipping destination captured at checkout. It is persisted on
// the order as jsonb and embedded in Stripe session metadata, so it only
// carries the fields the storefront collects.
type Address struct {
	Email      string `json:"email" validate:"required,email"`
	Name       string `json:"name" validate:"required"`
	Phone      string `json:"phone,omitempty"`
	Line1      string `json:"address_line1" validate:"required"`
	Line2      string `json:"address_line2,omitempty"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
	Country    string `json:"country"`
}

// Normalize trims whitespace and applies the CA default country.
func (a *Address) Normalize() {
	a.Email = strings.TrimSpace(a.Email)
	a.Name = strings.TrimSpace(a.Name)
	a.Phone = strings.TrimSpace(a.Phone)
	a.Line1 = strings.TrimSpace(a.Line1)
	a.Line2 = strings.TrimSpace(a.Line2)
	a.City = strings.TrimSpace(a.City)
	a.State = strings.TrimSpace(a.State)
	a.PostalCode = strings.TrimSpace(a.PostalCode)
	a.Country = strings.TrimSpace(a.Country)
	if a.Country == "" {
		a.Country = "CA"
	}
}
