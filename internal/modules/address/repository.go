package address

import "context"

// Repository defines data access for saved addresses.
type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]*Address, error)
	GetByID(ctx context.Context, userID, id string) (*Address, error)
	Create(ctx context.Context, a *Address) error
	Update(ctx context.Context, a *Address) error
	Delete(ctx context.Context, userID, id string) error

	// SetDefault flags the given address as the user's default and clears the
	// flag on every other address, atomically.
	SetDefault(ctx context.Context, userID, id string) error

	// ClearDefaults unsets the default flag on all of the user's addresses.
	ClearDefaults(ctx context.Context, userID string) error
}
