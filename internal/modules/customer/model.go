package customer

import (
	"time"

	"github.com/google/uuid"

	"github.com/packline/packline-backend/internal/modules/order"
)

// Summary is a read-only projection of a user plus totals derived from their
// orders. It is computed at query time and never persisted.
type Summary struct {
	UserID      uuid.UUID  `json:"user_id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name,omitempty"`
	LastName    string     `json:"last_name,omitempty"`
	OrderCount  int        `json:"order_count"`
	TotalSpent  float64    `json:"total_spent"`
	LastOrderAt *time.Time `json:"last_order_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Detail is a summary plus the customer's most recent orders.
type Detail struct {
	Summary
	RecentOrders []*order.Order `json:"recent_orders"`
}
