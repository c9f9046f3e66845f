package cart

import (
	"github.com/chainfeed/storefront-backend/internal/catalog"
	"github.com/shopspring/decimal"
)

// AddItemRequest carries the product snapshot the page already holds plus
// the requested quantity. Display fields are best-effort; only the id and
// a positive quantity are enforced.
type AddItemRequest struct {
	ID                string          `json:"id" validate:"required"`
	Name              string          `json:"name"`
	Price             decimal.Decimal `json:"price"`
	ImageURL          string          `json:"imageUrl"`
	InStock           bool            `json:"inStock"`
	ExternalVariantID string          `json:"externalVariantId"`
	Slug              string          `json:"slug"`
	Quantity          int             `json:"quantity" validate:"required,min=1"`
}

func (r AddItemRequest) toProduct() catalog.Product {
	return catalog.Product{
		ID:                r.ID,
		Name:              r.Name,
		Price:             r.Price,
		ImageURL:          r.ImageURL,
		InStock:           r.InStock,
		ExternalVariantID: r.ExternalVariantID,
		Slug:              r.Slug,
	}
}

// SetQuantityRequest overwrites a line's quantity. Values below 1 are a
// deliberate no-op at the store level, so no minimum is enforced here.
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}
