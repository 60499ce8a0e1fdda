package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/packline/packline-backend/internal/modules/cart"
	"github.com/packline/packline-backend/internal/modules/catalog"
	"github.com/packline/packline-backend/internal/modules/pricing"
)

// Service defines the order management business logic.
type Service interface {
	// Checkout converts the user's cart into an order, snapshotting prices
	// against the current catalog, and clears the cart on success.
	Checkout(ctx context.Context, userID string, req CheckoutRequest) (*Order, error)

	// GetOrder retrieves a full order with its items by UUID.
	GetOrder(ctx context.Context, id string) (*Order, error)

	// GetOrderByNumber retrieves an order by its human-readable number.
	GetOrderByNumber(ctx context.Context, orderNumber string) (*Order, error)

	// ListUserOrders returns all orders placed by a customer.
	ListUserOrders(ctx context.Context, userID string) ([]*Order, error)

	// ListOrders returns orders matching the admin filter.
	ListOrders(ctx context.Context, filter ListFilter) ([]*Order, error)

	// UpdateStatus advances an order to a new lifecycle status (admin only).
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Order, error)
}

// Config carries the checkout pricing knobs.
type Config struct {
	VATRate               float64 // e.g. 0.21
	ShippingFlatRate      float64
	FreeShippingThreshold float64 // order value (after discount) for free shipping
	Currency              string
}

type service struct {
	repo    Repository
	carts   cart.Service
	catalog catalog.Service
	cfg     Config
}

// NewService creates a new order service.
func NewService(repo Repository, carts cart.Service, catalogService catalog.Service, cfg Config) Service {
	if cfg.Currency == "" {
		cfg.Currency = "EUR"
	}
	return &service{repo: repo, carts: carts, catalog: catalogService, cfg: cfg}
}

func (s *service) Checkout(ctx context.Context, userID string, req CheckoutRequest) (*Order, error) {
	if req.ShippingAddress.Street == "" || req.ShippingAddress.City == "" ||
		req.ShippingAddress.PostalCode == "" || req.ShippingAddress.Country == "" {
		return nil, fmt.Errorf("a complete shipping address is required")
	}

	c, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(c.Items) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}

	// ── Re-validate and re-price every line against the current catalog ──────
	var items []*OrderItem
	var subtotal, discounted float64

	for _, line := range c.Items {
		product, err := s.catalog.GetProduct(ctx, line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product %s is no longer available", line.ProductName)
		}
		if !product.InStock {
			return nil, fmt.Errorf("product %s is currently unavailable", product.Name)
		}

		var variant *catalog.Variant
		if line.VariantID != "" {
			if variant = product.FindVariant(line.VariantID); variant == nil {
				return nil, fmt.Errorf("variant of %s is no longer available", product.Name)
			}
		}

		in := product.PricingInput(variant, line.Quantity)
		unit := pricing.UnitPrice(in)
		lineTotal := pricing.LineTotal(in)

		// Gross value before tier/product discounts; explicit pack prices
		// carry no discount, so their gross equals the line total.
		gross := lineTotal
		if in.DiscountPct != nil || len(in.Tiers) > 0 {
			grossIn := in
			grossIn.DiscountPct = nil
			grossIn.Tiers = nil
			gross = pricing.LineTotal(grossIn)
		}

		subtotal += gross
		discounted += lineTotal

		items = append(items, &OrderItem{
			ID:          uuid.New(),
			ProductID:   line.ProductID,
			VariantID:   line.VariantID,
			ProductName: product.Name,
			VariantName: line.VariantName,
			SKU:         line.SKU,
			Quantity:    line.Quantity,
			UnitPrice:   unit,
			LineTotal:   lineTotal,
		})
	}

	// ── Calculate totals ──────────────────────────────────────────────────────
	discount := subtotal - discounted
	goods := subtotal - discount

	shipping := s.cfg.ShippingFlatRate
	if s.cfg.FreeShippingThreshold > 0 && goods >= s.cfg.FreeShippingThreshold {
		shipping = 0
	}

	vat := (goods + shipping) * s.cfg.VATRate
	total := goods + shipping + vat

	o := &Order{
		ID:              uuid.New(),
		UserID:          uid,
		OrderNumber:     generateOrderNumber(),
		Status:          StatusPending,
		Subtotal:        round2(subtotal),
		Discount:        round2(discount),
		Shipping:        round2(shipping),
		VAT:             round2(vat),
		Total:           round2(total),
		Currency:        s.cfg.Currency,
		Notes:           req.Notes,
		ShippingAddress: req.ShippingAddress,
		Items:           items,
	}

	if err := s.repo.CreateOrder(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	// Cart clearing is best-effort: the order exists either way and a stale
	// cart only costs the user a manual clear.
	if _, err := s.carts.ClearCart(ctx, userID); err != nil {
		return o, nil
	}
	return o, nil
}

func (s *service) GetOrder(ctx context.Context, id string) (*Order, error) {
	return s.repo.GetOrderByID(ctx, id)
}

func (s *service) GetOrderByNumber(ctx context.Context, orderNumber string) (*Order, error) {
	return s.repo.GetOrderByNumber(ctx, orderNumber)
}

func (s *service) ListUserOrders(ctx context.Context, userID string) ([]*Order, error) {
	return s.repo.ListOrdersByUser(ctx, userID)
}

func (s *service) ListOrders(ctx context.Context, filter ListFilter) ([]*Order, error) {
	if filter.Status != "" && !ValidStatus(OrderStatus(filter.Status)) {
		return nil, fmt.Errorf("unknown status %q", filter.Status)
	}
	return s.repo.ListOrders(ctx, filter)
}

func (s *service) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Order, error) {
	o, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("order not found: %w", err)
	}

	newStatus := OrderStatus(strings.ToLower(req.Status))
	if !ValidStatus(newStatus) {
		return nil, fmt.Errorf("unknown status %q", req.Status)
	}
	if !CanTransition(o.Status, newStatus) {
		return nil, fmt.Errorf("cannot transition order from %s to %s", o.Status, newStatus)
	}

	if err := s.repo.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, err
	}
	o.Status = newStatus
	return o, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

// generateOrderNumber creates a human-readable order number: ORD-YYYYMMDD-XXXX
func generateOrderNumber() string {
	date := time.Now().UTC().Format("20060102")
	suffix := strings.ToUpper(uuid.New().String()[:4])
	return fmt.Sprintf("ORD-%s-%s", date, suffix)
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
