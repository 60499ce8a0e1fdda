package b2b

import "context"

// Repository defines data access for B2B quote requests.
type Repository interface {
	Create(ctx context.Context, req *Request) error
	GetByID(ctx context.Context, id string) (*Request, error)
	// List returns requests, optionally filtered by status, newest first.
	List(ctx context.Context, status string) ([]*Request, error)
	Update(ctx context.Context, req *Request) error
}
