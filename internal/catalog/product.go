// Package catalog holds the product shape the storefront consumes from the
// headless CMS. The cart treats everything except the id and price as
// best-effort display metadata; nothing here is re-validated against the CMS.
package catalog

import "github.com/shopspring/decimal"

// Product is the slice of a CMS product record the cart cares about.
type Product struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Price             decimal.Decimal `json:"price"`
	ImageURL          string          `json:"imageUrl"`
	InStock           bool            `json:"inStock"`
	ExternalVariantID string          `json:"externalVariantId"`
	Slug              string          `json:"slug,omitempty"`
}
