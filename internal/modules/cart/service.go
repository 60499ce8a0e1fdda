package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/packline/packline-backend/internal/modules/catalog"
	"github.com/packline/packline-backend/internal/modules/pricing"
)

// Service defines cart business logic. Every mutation reprices the affected
// line against the current catalog and returns the recalculated cart.
type Service interface {
	GetCart(ctx context.Context, userID string) (*Cart, error)
	AddItem(ctx context.Context, userID string, req AddItemRequest) (*Cart, error)
	UpdateItemQuantity(ctx context.Context, userID, itemID string, req UpdateItemRequest) (*Cart, error)
	RemoveItem(ctx context.Context, userID, itemID string) (*Cart, error)
	ClearCart(ctx context.Context, userID string) (*Cart, error)
}

type service struct {
	repo    Repository
	catalog catalog.Service
}

// NewService creates a new cart service.
func NewService(repo Repository, catalogService catalog.Service) Service {
	return &service{repo: repo, catalog: catalogService}
}

func (s *service) GetCart(ctx context.Context, userID string) (*Cart, error) {
	return s.repo.GetOrCreateCart(ctx, userID)
}

func (s *service) AddItem(ctx context.Context, userID string, req AddItemRequest) (*Cart, error) {
	if req.ProductID == "" {
		return nil, fmt.Errorf("product_id is required")
	}
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be > 0")
	}

	product, err := s.catalog.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("product %s not found", req.ProductID)
	}
	if !product.InStock {
		return nil, fmt.Errorf("product %s is currently unavailable", product.Name)
	}

	var variant *catalog.Variant
	if req.VariantID != "" {
		if variant = product.FindVariant(req.VariantID); variant == nil {
			return nil, fmt.Errorf("variant %s not found on product %s", req.VariantID, product.Name)
		}
	}

	c, err := s.repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Adding an existing (product, variant) line merges quantities and
	// reprices at the merged quantity.
	existing, err := s.repo.GetItem(ctx, c.ID.String(), req.ProductID, req.VariantID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		existing.Quantity += req.Quantity
		s.priceLine(existing, product, variant)
		if err := s.repo.UpdateItem(ctx, existing); err != nil {
			return nil, err
		}
	} else {
		item := &CartItem{
			ID:          uuid.New(),
			CartID:      c.ID,
			ProductID:   product.ID,
			VariantID:   req.VariantID,
			ProductName: product.Name,
			SKU:         product.SKU,
			Quantity:    req.Quantity,
		}
		if variant != nil {
			item.VariantName = variant.Name
			if variant.SKU != "" {
				item.SKU = variant.SKU
			}
		}
		s.priceLine(item, product, variant)
		if err := s.repo.InsertItem(ctx, item); err != nil {
			return nil, err
		}
	}

	return s.repo.GetOrCreateCart(ctx, userID)
}

func (s *service) UpdateItemQuantity(ctx context.Context, userID, itemID string, req UpdateItemRequest) (*Cart, error) {
	if req.Quantity < 0 {
		return nil, fmt.Errorf("quantity must be >= 0")
	}

	c, err := s.repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.GetItemByID(ctx, c.ID.String(), itemID)
	if err != nil {
		return nil, fmt.Errorf("cart item not found: %w", err)
	}

	if req.Quantity == 0 {
		if err := s.repo.DeleteItem(ctx, c.ID.String(), itemID); err != nil {
			return nil, err
		}
		return s.repo.GetOrCreateCart(ctx, userID)
	}

	product, err := s.catalog.GetProduct(ctx, item.ProductID)
	if err != nil {
		return nil, fmt.Errorf("product %s no longer available", item.ProductName)
	}
	var variant *catalog.Variant
	if item.VariantID != "" {
		variant = product.FindVariant(item.VariantID)
	}

	item.Quantity = req.Quantity
	s.priceLine(item, product, variant)
	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}

	return s.repo.GetOrCreateCart(ctx, userID)
}

func (s *service) RemoveItem(ctx context.Context, userID, itemID string) (*Cart, error) {
	c, err := s.repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetItemByID(ctx, c.ID.String(), itemID); err != nil {
		return nil, fmt.Errorf("cart item not found: %w", err)
	}
	if err := s.repo.DeleteItem(ctx, c.ID.String(), itemID); err != nil {
		return nil, err
	}
	return s.repo.GetOrCreateCart(ctx, userID)
}

func (s *service) ClearCart(ctx context.Context, userID string) (*Cart, error) {
	c, err := s.repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.ClearItems(ctx, c.ID.String()); err != nil {
		return nil, err
	}
	return s.repo.GetOrCreateCart(ctx, userID)
}

func (s *service) priceLine(item *CartItem, product *catalog.Product, variant *catalog.Variant) {
	in := product.PricingInput(variant, item.Quantity)
	item.UnitPrice = pricing.UnitPrice(in)
	item.LineTotal = pricing.LineTotal(in)
}
