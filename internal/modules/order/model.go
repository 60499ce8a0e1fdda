package order

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// validTransitions defines the allowed status state machine. Cancellation is
// only possible before the order ships.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

// CanTransition returns true if an order may move from current to next.
func CanTransition(current, next OrderStatus) bool {
	for _, s := range validTransitions[current] {
		if s == next {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is a known status value.
func ValidStatus(s OrderStatus) bool {
	_, ok := validTransitions[s]
	return ok
}

// ShippingAddress is the address snapshot frozen onto an order at checkout.
type ShippingAddress struct {
	FullName   string `json:"full_name"`
	Company    string `json:"company,omitempty"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone,omitempty"`
}

// Order represents a placed customer order. Everything except Status is
// immutable once the order exists.
type Order struct {
	ID              uuid.UUID       `json:"id"`
	UserID          uuid.UUID       `json:"user_id"`
	OrderNumber     string          `json:"order_number"`
	Status          OrderStatus     `json:"status"`
	Subtotal        float64         `json:"subtotal"`
	Discount        float64         `json:"discount"`
	Shipping        float64         `json:"shipping"`
	VAT             float64         `json:"vat"`
	Total           float64         `json:"total"`
	Currency        string          `json:"currency"`
	Notes           string          `json:"notes,omitempty"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	Items           []*OrderItem    `json:"items,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// OrderItem is a priced snapshot of one line at the moment of checkout.
type OrderItem struct {
	ID          uuid.UUID `json:"id"`
	OrderID     uuid.UUID `json:"order_id"`
	ProductID   string    `json:"product_id"`
	VariantID   string    `json:"variant_id,omitempty"`
	ProductName string    `json:"product_name"`
	VariantName string    `json:"variant_name,omitempty"`
	SKU         string    `json:"sku,omitempty"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
	LineTotal   float64   `json:"line_total"`
}

// CheckoutRequest is the payload for converting the caller's cart into an order.
type CheckoutRequest struct {
	ShippingAddress ShippingAddress `json:"shipping_address"`
	Notes           string          `json:"notes,omitempty"`
}

// UpdateStatusRequest is the payload for the admin status transition.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ListFilter narrows admin order queries and the CSV export.
type ListFilter struct {
	Status string
	From   *time.Time
	To     *time.Time
	Search string // matches order number or shipping name, case-insensitive
}
