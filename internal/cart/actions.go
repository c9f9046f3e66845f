package cart

import "github.com/chainfeed/storefront-backend/internal/catalog"

// Action is the sealed set of cart state transitions. Each variant carries
// only the fields its reduction needs.
type Action interface {
	isAction()
}

// Add merges quantity into an existing line for the same product id or
// appends a new line built from the product record.
type Add struct {
	Product  catalog.Product
	Quantity int
}

// Remove deletes the line with the given id; an absent id is a no-op.
type Remove struct {
	ID string
}

// SetQuantity overwrites a line's quantity. Values below 1 are a no-op;
// removal is always an explicit Remove.
type SetQuantity struct {
	ID       string
	Quantity int
}

// Clear empties the collection.
type Clear struct{}

// Initialize replaces the whole collection from a durable snapshot. It does
// not merge and trusts the snapshot's contents.
type Initialize struct {
	Lines []Line
}

func (Add) isAction()         {}
func (Remove) isAction()      {}
func (SetQuantity) isAction() {}
func (Clear) isAction()       {}
func (Initialize) isAction()  {}
