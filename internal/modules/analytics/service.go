package analytics

import (
	"context"
	"time"

	"github.com/packline/packline-backend/internal/modules/order"
)

// Service computes admin dashboard aggregates. Everything is a single-pass
// fold over the orders fetched for the requested window, recomputed per call.
type Service interface {
	Revenue(ctx context.Context, from, to time.Time) ([]DayBucket, error)
	OrdersByWeekday(ctx context.Context, from, to time.Time) ([]WeekdayBucket, error)
	OrdersByStatus(ctx context.Context, from, to time.Time) ([]StatusBucket, error)
	TopProducts(ctx context.Context, from, to time.Time, limit int) ([]ProductSales, error)
}

type service struct {
	orders order.Service
}

// NewService creates a new analytics service reading from the order module.
func NewService(orders order.Service) Service { return &service{orders: orders} }

func (s *service) window(ctx context.Context, from, to time.Time) ([]*order.Order, error) {
	return s.orders.ListOrders(ctx, order.ListFilter{From: &from, To: &to})
}

func (s *service) Revenue(ctx context.Context, from, to time.Time) ([]DayBucket, error) {
	orders, err := s.window(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return RevenueByDay(orders, from, to), nil
}

func (s *service) OrdersByWeekday(ctx context.Context, from, to time.Time) ([]WeekdayBucket, error) {
	orders, err := s.window(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return OrdersByWeekday(orders), nil
}

func (s *service) OrdersByStatus(ctx context.Context, from, to time.Time) ([]StatusBucket, error) {
	orders, err := s.window(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return OrdersByStatus(orders), nil
}

func (s *service) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]ProductSales, error) {
	orders, err := s.window(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return TopProducts(orders, limit), nil
}
