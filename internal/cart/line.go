package cart

import (
	"strings"

	"github.com/chainfeed/storefront-backend/internal/catalog"
	pkgerrors "github.com/chainfeed/storefront-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// Line is one entry in the cart. The price is frozen at the moment the line
// was created; re-adding the same product only bumps the quantity. The
// external variant id is opaque to us and may be empty, in which case the
// line is skipped when the checkout URL is built but still counts toward
// totals.
type Line struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Price             decimal.Decimal `json:"price"`
	Image             string          `json:"image"`
	Quantity          int             `json:"quantity"`
	ExternalVariantID string          `json:"externalVariantId"`
	InStock           bool            `json:"inStock"`
	Slug              string          `json:"slug,omitempty"`
}

// NewLine builds a cart line from a CMS product record. Missing display
// fields degrade to empty strings; only a missing id or a non-positive
// quantity is rejected.
func NewLine(product catalog.Product, quantity int) (Line, error) {
	if strings.TrimSpace(product.ID) == "" {
		return Line{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if quantity <= 0 {
		return Line{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a positive integer")
	}
	return Line{
		ID:                product.ID,
		Name:              product.Name,
		Price:             product.Price,
		Image:             product.ImageURL,
		Quantity:          quantity,
		ExternalVariantID: strings.TrimSpace(product.ExternalVariantID),
		InStock:           product.InStock,
		Slug:              product.Slug,
	}, nil
}

// Subtotal returns price multiplied by quantity for this line.
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
