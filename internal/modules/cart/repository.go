package cart

import "context"

// Repository defines data access for carts and cart lines.
type Repository interface {
	// GetOrCreateCart returns the user's open cart, creating an empty one if
	// none exists yet.
	GetOrCreateCart(ctx context.Context, userID string) (*Cart, error)

	// GetItem returns the line for (cartID, productID, variantID), or nil.
	GetItem(ctx context.Context, cartID, productID, variantID string) (*CartItem, error)

	// GetItemByID returns a line by its id, scoped to the cart.
	GetItemByID(ctx context.Context, cartID, itemID string) (*CartItem, error)

	// InsertItem adds a new line to the cart.
	InsertItem(ctx context.Context, item *CartItem) error

	// UpdateItem rewrites a line's quantity, unit price, and line total.
	UpdateItem(ctx context.Context, item *CartItem) error

	// DeleteItem removes a single line.
	DeleteItem(ctx context.Context, cartID, itemID string) error

	// ClearItems removes every line from the cart.
	ClearItems(ctx context.Context, cartID string) error
}
