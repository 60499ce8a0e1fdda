package order

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packline/packline-backend/internal/modules/cart"
	"github.com/packline/packline-backend/internal/modules/catalog"
	"github.com/packline/packline-backend/internal/modules/pricing"
)

// ── fakes ────────────────────────────────────────────────────────────────────

type memRepo struct {
	orders map[string]*Order
}

func newMemRepo() *memRepo { return &memRepo{orders: map[string]*Order{}} }

func (m *memRepo) CreateOrder(ctx context.Context, o *Order) error {
	o.CreatedAt = time.Now()
	m.orders[o.ID.String()] = o
	return nil
}

func (m *memRepo) GetOrderByID(ctx context.Context, id string) (*Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, fmt.Errorf("no rows")
	}
	return o, nil
}

func (m *memRepo) GetOrderByNumber(ctx context.Context, number string) (*Order, error) {
	for _, o := range m.orders {
		if o.OrderNumber == number {
			return o, nil
		}
	}
	return nil, fmt.Errorf("no rows")
}

func (m *memRepo) ListOrdersByUser(ctx context.Context, userID string) ([]*Order, error) {
	var out []*Order
	for _, o := range m.orders {
		if o.UserID.String() == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *memRepo) ListOrders(ctx context.Context, filter ListFilter) ([]*Order, error) {
	var out []*Order
	for _, o := range m.orders {
		if filter.Status != "" && string(o.Status) != filter.Status {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (m *memRepo) UpdateStatus(ctx context.Context, id string, status OrderStatus) error {
	o, ok := m.orders[id]
	if !ok {
		return fmt.Errorf("no rows")
	}
	o.Status = status
	return nil
}

type fakeCartService struct {
	cart    *cart.Cart
	cleared bool
}

func (f *fakeCartService) GetCart(ctx context.Context, userID string) (*cart.Cart, error) {
	return f.cart, nil
}
func (f *fakeCartService) AddItem(ctx context.Context, userID string, req cart.AddItemRequest) (*cart.Cart, error) {
	return f.cart, nil
}
func (f *fakeCartService) UpdateItemQuantity(ctx context.Context, userID, itemID string, req cart.UpdateItemRequest) (*cart.Cart, error) {
	return f.cart, nil
}
func (f *fakeCartService) RemoveItem(ctx context.Context, userID, itemID string) (*cart.Cart, error) {
	return f.cart, nil
}
func (f *fakeCartService) ClearCart(ctx context.Context, userID string) (*cart.Cart, error) {
	f.cleared = true
	f.cart.Items = nil
	return f.cart, nil
}

type fakeCatalog struct {
	products map[string]*catalog.Product
}

func (f *fakeCatalog) GetProduct(ctx context.Context, id string) (*catalog.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, fmt.Errorf("product %s not found", id)
	}
	return p, nil
}
func (f *fakeCatalog) ListProducts(ctx context.Context, category string) ([]*catalog.Product, error) {
	return nil, nil
}
func (f *fakeCatalog) GetProductBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	return nil, fmt.Errorf("not found")
}
func (f *fakeCatalog) ListCategories(ctx context.Context) ([]*catalog.Category, error) {
	return nil, nil
}
func (f *fakeCatalog) ListActiveBanners(ctx context.Context, now time.Time) ([]*catalog.Banner, error) {
	return nil, nil
}
func (f *fakeCatalog) ListActiveAnnouncements(ctx context.Context) ([]*catalog.Announcement, error) {
	return nil, nil
}
func (f *fakeCatalog) ListBlogPosts(ctx context.Context) ([]*catalog.BlogPost, error) {
	return nil, nil
}
func (f *fakeCatalog) GetBlogPost(ctx context.Context, slug string) (*catalog.BlogPost, error) {
	return nil, fmt.Errorf("not found")
}

// ── fixtures ─────────────────────────────────────────────────────────────────

var testAddress = ShippingAddress{
	FullName:   "Ines Verhoeven",
	Street:     "Handelskade 14",
	City:       "Utrecht",
	PostalCode: "3511 AA",
	Country:    "NL",
}

func checkoutFixtures() (Service, *memRepo, *fakeCartService, string) {
	userID := uuid.New()
	cartID := uuid.New()

	cat := &fakeCatalog{products: map[string]*catalog.Product{
		"box-1": {
			ID:        "box-1",
			Name:      "Shipping Box M",
			SKU:       "BOX-M",
			BasePrice: 10,
			InStock:   true,
			Tiers:     []pricing.Tier{{MinQuantity: 50, DiscountPct: 10}},
			Variants:  []catalog.Variant{{ID: "v-double", Name: "Double wall", PriceAdjustment: 2}},
		},
		"tape-1": {ID: "tape-1", Name: "Packing Tape", BasePrice: 2.5, InStock: true},
	}}

	carts := &fakeCartService{cart: &cart.Cart{
		ID:     cartID,
		UserID: userID,
		Items: []*cart.CartItem{
			{ID: uuid.New(), CartID: cartID, ProductID: "box-1", VariantID: "v-double",
				ProductName: "Shipping Box M", VariantName: "Double wall", Quantity: 60},
		},
	}}

	repo := newMemRepo()
	svc := NewService(repo, carts, cat, Config{
		VATRate:               0.21,
		ShippingFlatRate:      10,
		FreeShippingThreshold: 500,
	})
	return svc, repo, carts, userID.String()
}

// ── tests ────────────────────────────────────────────────────────────────────

func TestCheckout_TotalsAndSnapshot(t *testing.T) {
	svc, repo, carts, userID := checkoutFixtures()

	o, err := svc.Checkout(context.Background(), userID, CheckoutRequest{ShippingAddress: testAddress})
	require.NoError(t, err)

	// 60 × (10+2) gross = 720; 10% tier discount = 72; goods = 648.
	assert.Equal(t, 720.0, o.Subtotal)
	assert.Equal(t, 72.0, o.Discount)
	// 648 >= 500 threshold, so shipping is free.
	assert.Equal(t, 0.0, o.Shipping)
	assert.Equal(t, 136.08, o.VAT) // 21% of 648
	assert.Equal(t, 784.08, o.Total)
	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, "EUR", o.Currency)
	assert.Regexp(t, `^ORD-\d{8}-[0-9A-F]{4}$`, o.OrderNumber)

	require.Len(t, o.Items, 1)
	assert.Equal(t, 10.80, o.Items[0].UnitPrice)
	assert.Equal(t, 648.0, o.Items[0].LineTotal)

	assert.True(t, carts.cleared, "checkout must clear the cart")
	assert.Len(t, repo.orders, 1)
}

func TestCheckout_FlatShippingBelowThreshold(t *testing.T) {
	svc, _, carts, userID := checkoutFixtures()
	carts.cart.Items = []*cart.CartItem{
		{ID: uuid.New(), ProductID: "tape-1", ProductName: "Packing Tape", Quantity: 4},
	}

	o, err := svc.Checkout(context.Background(), userID, CheckoutRequest{ShippingAddress: testAddress})
	require.NoError(t, err)

	assert.Equal(t, 10.0, o.Subtotal)
	assert.Equal(t, 0.0, o.Discount)
	assert.Equal(t, 10.0, o.Shipping)
	assert.Equal(t, 4.2, o.VAT) // 21% of 20
	assert.Equal(t, 24.2, o.Total)
}

func TestCheckout_EmptyCart(t *testing.T) {
	svc, _, carts, userID := checkoutFixtures()
	carts.cart.Items = nil

	_, err := svc.Checkout(context.Background(), userID, CheckoutRequest{ShippingAddress: testAddress})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cart is empty")
}

func TestCheckout_IncompleteAddress(t *testing.T) {
	svc, _, _, userID := checkoutFixtures()

	_, err := svc.Checkout(context.Background(), userID, CheckoutRequest{
		ShippingAddress: ShippingAddress{City: "Utrecht"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shipping address")
}

func TestCheckout_UnavailableProduct(t *testing.T) {
	svc, _, carts, userID := checkoutFixtures()
	carts.cart.Items = []*cart.CartItem{
		{ID: uuid.New(), ProductID: "discontinued", ProductName: "Old Box", Quantity: 1},
	}

	_, err := svc.Checkout(context.Background(), userID, CheckoutRequest{ShippingAddress: testAddress})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no longer available")
}

func TestUpdateStatus_AllowedPath(t *testing.T) {
	svc, _, _, userID := checkoutFixtures()
	ctx := context.Background()

	o, err := svc.Checkout(ctx, userID, CheckoutRequest{ShippingAddress: testAddress})
	require.NoError(t, err)

	for _, next := range []string{"processing", "shipped", "delivered"} {
		o, err = svc.UpdateStatus(ctx, o.ID.String(), UpdateStatusRequest{Status: next})
		require.NoError(t, err, "transition to %s", next)
		assert.Equal(t, OrderStatus(next), o.Status)
	}
}

func TestUpdateStatus_IllegalTransitions(t *testing.T) {
	svc, _, _, userID := checkoutFixtures()
	ctx := context.Background()

	o, err := svc.Checkout(ctx, userID, CheckoutRequest{ShippingAddress: testAddress})
	require.NoError(t, err)

	// pending -> shipped skips processing.
	_, err = svc.UpdateStatus(ctx, o.ID.String(), UpdateStatusRequest{Status: "shipped"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot transition")

	// delivered orders cannot be cancelled.
	_, err = svc.UpdateStatus(ctx, o.ID.String(), UpdateStatusRequest{Status: "processing"})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, o.ID.String(), UpdateStatusRequest{Status: "shipped"})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, o.ID.String(), UpdateStatusRequest{Status: "delivered"})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, o.ID.String(), UpdateStatusRequest{Status: "cancelled"})
	require.Error(t, err)
}

func TestUpdateStatus_CancelBeforeShipping(t *testing.T) {
	svc, _, _, userID := checkoutFixtures()
	ctx := context.Background()

	o, err := svc.Checkout(ctx, userID, CheckoutRequest{ShippingAddress: testAddress})
	require.NoError(t, err)

	o, err = svc.UpdateStatus(ctx, o.ID.String(), UpdateStatusRequest{Status: "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, o.Status)
}

func TestCanTransition_Table(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusProcessing))
	assert.True(t, CanTransition(StatusProcessing, StatusCancelled))
	assert.False(t, CanTransition(StatusShipped, StatusCancelled))
	assert.False(t, CanTransition(StatusCancelled, StatusPending))
	assert.False(t, CanTransition(StatusDelivered, StatusShipped))
}
