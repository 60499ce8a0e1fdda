package customer

import "context"

// Repository computes customer projections straight from the users and
// orders tables.
type Repository interface {
	// List returns customer summaries matching the search substring
	// (name or email, case-insensitive), ordered by sortBy.
	List(ctx context.Context, search, sortBy string) ([]*Summary, error)

	// GetByID returns one customer's summary.
	GetByID(ctx context.Context, userID string) (*Summary, error)
}
