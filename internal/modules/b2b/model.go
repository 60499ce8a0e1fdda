package b2b

import (
	"time"

	"github.com/google/uuid"
)

// RequestStatus represents the review pipeline state of a B2B quote request.
type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusReviewed  RequestStatus = "reviewed"
	StatusQuoted    RequestStatus = "quoted"
	StatusConverted RequestStatus = "converted"
	StatusRejected  RequestStatus = "rejected"
)

// validTransitions defines the admin review pipeline. Rejection is possible
// at any pre-terminal stage; converted and rejected are terminal.
var validTransitions = map[RequestStatus][]RequestStatus{
	StatusPending:   {StatusReviewed, StatusRejected},
	StatusReviewed:  {StatusQuoted, StatusRejected},
	StatusQuoted:    {StatusConverted, StatusRejected},
	StatusConverted: {},
	StatusRejected:  {},
}

// CanTransition returns true if a request may move from current to next.
func CanTransition(current, next RequestStatus) bool {
	for _, s := range validTransitions[current] {
		if s == next {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is a known status value.
func ValidStatus(s RequestStatus) bool {
	_, ok := validTransitions[s]
	return ok
}

// RequestLine is one free-form product line on a quote request.
type RequestLine struct {
	ProductName string `json:"product_name" validate:"required"`
	Quantity    int    `json:"quantity" validate:"required,gt=0"`
}

// Request is a business customer's bulk-quote submission, mutated only
// through the admin PATCH endpoint once created.
type Request struct {
	ID          uuid.UUID     `json:"id"`
	CompanyName string        `json:"company_name"`
	ContactName string        `json:"contact_name"`
	Email       string        `json:"email"`
	Phone       string        `json:"phone,omitempty"`
	VATNumber   string        `json:"vat_number,omitempty"`
	Lines       []RequestLine `json:"lines"`
	Budget      float64       `json:"budget,omitempty"`
	Message     string        `json:"message,omitempty"`
	Status      RequestStatus `json:"status"`
	AdminNotes  string        `json:"admin_notes,omitempty"`
	ReviewedAt  *time.Time    `json:"reviewed_at,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// SubmitRequest is the public submission payload.
type SubmitRequest struct {
	CompanyName string        `json:"company_name" validate:"required,min=2,max=200"`
	ContactName string        `json:"contact_name" validate:"required,min=2,max=200"`
	Email       string        `json:"email" validate:"required,email"`
	Phone       string        `json:"phone" validate:"omitempty,max=40"`
	VATNumber   string        `json:"vat_number" validate:"omitempty,max=40"`
	Lines       []RequestLine `json:"lines" validate:"required,min=1,dive"`
	Budget      float64       `json:"budget" validate:"omitempty,gte=0"`
	Message     string        `json:"message" validate:"omitempty,max=4000"`
}

// UpdateRequest is the admin PATCH payload.
type UpdateRequest struct {
	Status     string `json:"status,omitempty"`
	AdminNotes string `json:"admin_notes,omitempty"`
}
