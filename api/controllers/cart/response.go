package cart

import (
	cartsvc "github.com/chainfeed/storefront-backend/internal/cart"
	"github.com/shopspring/decimal"
)

// CartView is the read model pages render: the ordered lines plus the two
// derived aggregates.
type CartView struct {
	Items     []cartsvc.Line  `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"itemCount"`
}

func newCartView(store *cartsvc.Store) CartView {
	return CartView{
		Items:     store.Lines(),
		Total:     store.Total(),
		ItemCount: store.ItemCount(),
	}
}

// CheckoutURLView wraps the derived redirect. An empty URL means the cart
// is empty and the client must not navigate.
type CheckoutURLView struct {
	CheckoutURL string `json:"checkoutUrl"`
}
