package cart

import (
	"time"

	"github.com/google/uuid"
)

// Cart is a user's open shopping cart. Lines are keyed by (product, variant);
// totals are recomputed from the lines on every read and mutation.
type Cart struct {
	ID        uuid.UUID   `json:"id"`
	UserID    uuid.UUID   `json:"user_id"`
	Items     []*CartItem `json:"items"`
	Subtotal  float64     `json:"subtotal"`
	ItemCount int         `json:"item_count"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// CartItem is one priced line in a cart. Unit price is recomputed against the
// current catalog whenever the line's quantity changes.
type CartItem struct {
	ID          uuid.UUID `json:"id"`
	CartID      uuid.UUID `json:"cart_id"`
	ProductID   string    `json:"product_id"`
	VariantID   string    `json:"variant_id,omitempty"`
	ProductName string    `json:"product_name"`
	VariantName string    `json:"variant_name,omitempty"`
	SKU         string    `json:"sku,omitempty"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
	LineTotal   float64   `json:"line_total"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Recalculate refreshes the cart's derived totals from its lines.
func (c *Cart) Recalculate() {
	c.Subtotal = 0
	c.ItemCount = 0
	for _, item := range c.Items {
		c.Subtotal += item.LineTotal
		c.ItemCount += item.Quantity
	}
	c.Subtotal = round2(c.Subtotal)
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}

// AddItemRequest is the payload for adding a product line to the cart.
type AddItemRequest struct {
	ProductID string `json:"product_id"`
	VariantID string `json:"variant_id,omitempty"`
	Quantity  int    `json:"quantity"`
}

// UpdateItemRequest is the payload for changing a line's quantity.
// Quantity 0 removes the line.
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}
