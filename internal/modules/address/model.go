package address

import (
	"time"

	"github.com/google/uuid"
)

// Address is a saved shipping address belonging to a user. At most one
// address per user is flagged default; setting a new default clears the rest.
type Address struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Label      string    `json:"label,omitempty"`
	FullName   string    `json:"full_name"`
	Company    string    `json:"company,omitempty"`
	Street     string    `json:"street"`
	City       string    `json:"city"`
	PostalCode string    `json:"postal_code"`
	Country    string    `json:"country"`
	Phone      string    `json:"phone,omitempty"`
	IsDefault  bool      `json:"is_default"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// SaveAddressRequest is the payload for creating or updating an address.
type SaveAddressRequest struct {
	Label      string `json:"label"`
	FullName   string `json:"full_name"`
	Company    string `json:"company"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
	IsDefault  bool   `json:"is_default"`
}
