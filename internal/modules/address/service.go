package address

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service defines saved-address business logic.
type Service interface {
	ListAddresses(ctx context.Context, userID string) ([]*Address, error)
	CreateAddress(ctx context.Context, userID string, req SaveAddressRequest) (*Address, error)
	UpdateAddress(ctx context.Context, userID, id string, req SaveAddressRequest) (*Address, error)
	DeleteAddress(ctx context.Context, userID, id string) error
	SetDefaultAddress(ctx context.Context, userID, id string) ([]*Address, error)
}

type service struct{ repo Repository }

// NewService creates a new address service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) ListAddresses(ctx context.Context, userID string) ([]*Address, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) CreateAddress(ctx context.Context, userID string, req SaveAddressRequest) (*Address, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}

	existing, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	a := &Address{
		ID:         uuid.New(),
		UserID:     uid,
		Label:      req.Label,
		FullName:   req.FullName,
		Company:    req.Company,
		Street:     req.Street,
		City:       req.City,
		PostalCode: req.PostalCode,
		Country:    req.Country,
		Phone:      req.Phone,
		// The first saved address always becomes the default.
		IsDefault: req.IsDefault || len(existing) == 0,
	}

	if a.IsDefault {
		if err := s.repo.ClearDefaults(ctx, userID); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) UpdateAddress(ctx context.Context, userID, id string, req SaveAddressRequest) (*Address, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	a, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("address not found: %w", err)
	}

	a.Label = req.Label
	a.FullName = req.FullName
	a.Company = req.Company
	a.Street = req.Street
	a.City = req.City
	a.PostalCode = req.PostalCode
	a.Country = req.Country
	a.Phone = req.Phone

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	if req.IsDefault && !a.IsDefault {
		if err := s.repo.SetDefault(ctx, userID, id); err != nil {
			return nil, err
		}
		a.IsDefault = true
	}
	return a, nil
}

func (s *service) DeleteAddress(ctx context.Context, userID, id string) error {
	if _, err := s.repo.GetByID(ctx, userID, id); err != nil {
		return fmt.Errorf("address not found: %w", err)
	}
	return s.repo.Delete(ctx, userID, id)
}

// SetDefaultAddress flips the default flag to the given address and returns
// the refreshed list, in which exactly one address is flagged.
func (s *service) SetDefaultAddress(ctx context.Context, userID, id string) ([]*Address, error) {
	if err := s.repo.SetDefault(ctx, userID, id); err != nil {
		return nil, fmt.Errorf("address not found: %w", err)
	}
	return s.repo.ListByUser(ctx, userID)
}

func validate(req SaveAddressRequest) error {
	if req.FullName == "" {
		return fmt.Errorf("full_name is required")
	}
	if req.Street == "" || req.City == "" || req.PostalCode == "" || req.Country == "" {
		return fmt.Errorf("street, city, postal_code, and country are required")
	}
	return nil
}
