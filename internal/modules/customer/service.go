package customer

import (
	"context"
	"fmt"

	"github.com/packline/packline-backend/internal/modules/order"
)

const recentOrderLimit = 10

// Service defines the admin customer-projection logic.
type Service interface {
	ListCustomers(ctx context.Context, search, sortBy string) ([]*Summary, error)
	GetCustomer(ctx context.Context, userID string) (*Detail, error)
}

type service struct {
	repo   Repository
	orders order.Service
}

// NewService creates a new customer projection service.
func NewService(repo Repository, orders order.Service) Service {
	return &service{repo: repo, orders: orders}
}

func (s *service) ListCustomers(ctx context.Context, search, sortBy string) ([]*Summary, error) {
	return s.repo.List(ctx, search, sortBy)
}

func (s *service) GetCustomer(ctx context.Context, userID string) (*Detail, error) {
	summary, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("customer not found: %w", err)
	}

	orders, err := s.orders.ListUserOrders(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(orders) > recentOrderLimit {
		orders = orders[:recentOrderLimit]
	}

	return &Detail{Summary: *summary, RecentOrders: orders}, nil
}
