package customer

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packline/packline-backend/internal/modules/order"
)

type memRepo struct {
	summaries map[string]*Summary
}

func newMemRepo() *memRepo { return &memRepo{summaries: map[string]*Summary{}} }

func (m *memRepo) List(ctx context.Context, search, sortBy string) ([]*Summary, error) {
	out := make([]*Summary, 0, len(m.summaries))
	for _, s := range m.summaries {
		out = append(out, s)
	}
	return out, nil
}

func (m *memRepo) GetByID(ctx context.Context, userID string) (*Summary, error) {
	s, ok := m.summaries[userID]
	if !ok {
		return nil, fmt.Errorf("no customer %s", userID)
	}
	return s, nil
}

type fakeOrderService struct {
	orders []*order.Order
}

func (f *fakeOrderService) Checkout(ctx context.Context, userID string, req order.CheckoutRequest) (*order.Order, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f *fakeOrderService) GetOrder(ctx context.Context, id string) (*order.Order, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f *fakeOrderService) GetOrderByNumber(ctx context.Context, orderNumber string) (*order.Order, error) {
	return nil, fmt.Errorf("not implemented")
}

func (f *fakeOrderService) ListUserOrders(ctx context.Context, userID string) ([]*order.Order, error) {
	return f.orders, nil
}

func (f *fakeOrderService) ListOrders(ctx context.Context, filter order.ListFilter) ([]*order.Order, error) {
	return f.orders, nil
}

func (f *fakeOrderService) UpdateStatus(ctx context.Context, id string, req order.UpdateStatusRequest) (*order.Order, error) {
	return nil, fmt.Errorf("not implemented")
}

func TestGetCustomerIncludesRecentOrders(t *testing.T) {
	repo := newMemRepo()
	id := uuid.New()
	repo.summaries[id.String()] = &Summary{
		UserID:     id,
		Email:      "buyer@example.com",
		OrderCount: 2,
		TotalSpent: 310.50,
		CreatedAt:  time.Now().UTC(),
	}

	orders := &fakeOrderService{orders: []*order.Order{
		{OrderNumber: "ORD-20260810-AB12", Total: 200.25},
		{OrderNumber: "ORD-20260802-CD34", Total: 110.25},
	}}

	svc := NewService(repo, orders)

	detail, err := svc.GetCustomer(context.Background(), id.String())
	require.NoError(t, err)
	assert.Equal(t, "buyer@example.com", detail.Email)
	assert.Equal(t, 2, detail.OrderCount)
	require.Len(t, detail.RecentOrders, 2)
	assert.Equal(t, "ORD-20260810-AB12", detail.RecentOrders[0].OrderNumber)
}

func TestGetCustomerCapsRecentOrders(t *testing.T) {
	repo := newMemRepo()
	id := uuid.New()
	repo.summaries[id.String()] = &Summary{UserID: id, Email: "bulk@example.com"}

	many := make([]*order.Order, 0, recentOrderLimit+5)
	for i := 0; i < recentOrderLimit+5; i++ {
		many = append(many, &order.Order{OrderNumber: fmt.Sprintf("ORD-20260801-%04X", i)})
	}

	svc := NewService(repo, &fakeOrderService{orders: many})

	detail, err := svc.GetCustomer(context.Background(), id.String())
	require.NoError(t, err)
	assert.Len(t, detail.RecentOrders, recentOrderLimit)
}

func TestGetCustomerNotFound(t *testing.T) {
	svc := NewService(newMemRepo(), &fakeOrderService{})

	_, err := svc.GetCustomer(context.Background(), uuid.NewString())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
