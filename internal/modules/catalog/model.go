package catalog

import (
	"time"

	"github.com/packline/packline-backend/internal/modules/pricing"
)

// Product is a sellable item from the CMS catalog. Pricing inputs (base
// price, discount, variants, tiers) are authored in the CMS and consumed
// read-only here.
type Product struct {
	ID          string         `json:"id"`
	Slug        string         `json:"slug"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	SKU         string         `json:"sku,omitempty"`
	BasePrice   float64        `json:"base_price"`
	DiscountPct *float64       `json:"discount_pct,omitempty"`
	Currency    string         `json:"currency"`
	InStock     bool           `json:"in_stock"`
	Category    string         `json:"category,omitempty"`
	Images      []string       `json:"images,omitempty"`
	Variants    []Variant      `json:"variants,omitempty"`
	Tiers       []pricing.Tier `json:"pricing_tiers,omitempty"`
	SEO         *SEO           `json:"seo,omitempty"`
}

// Variant is a purchasable configuration of a product with its own additive
// price adjustment and optional fixed pack sizes.
type Variant struct {
	ID              string                   `json:"id"`
	Name            string                   `json:"name"`
	SKU             string                   `json:"sku,omitempty"`
	PriceAdjustment float64                  `json:"price_adjustment"`
	QuantityOptions []pricing.QuantityOption `json:"quantity_options,omitempty"`
}

// SEO holds the CMS-authored metadata for a product or blog post page.
type SEO struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// Category groups products in the storefront navigation.
type Category struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// Banner is a promotional hero slot with an optional display window.
type Banner struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Subtitle string     `json:"subtitle,omitempty"`
	ImageURL string     `json:"image_url,omitempty"`
	LinkURL  string     `json:"link_url,omitempty"`
	StartsAt *time.Time `json:"starts_at,omitempty"`
	EndsAt   *time.Time `json:"ends_at,omitempty"`
}

// Announcement is a short site-wide notice bar message.
type Announcement struct {
	ID      string `json:"id"`
	Message string `json:"message"`
	LinkURL string `json:"link_url,omitempty"`
	Active  bool   `json:"active"`
}

// BlogPost is a guide/support article from the CMS.
type BlogPost struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Excerpt     string    `json:"excerpt,omitempty"`
	Body        string    `json:"body,omitempty"`
	Author      string    `json:"author,omitempty"`
	PublishedAt time.Time `json:"published_at"`
	SEO         *SEO      `json:"seo,omitempty"`
}

// FindVariant returns the product variant with the given id, or nil.
func (p *Product) FindVariant(variantID string) *Variant {
	for i := range p.Variants {
		if p.Variants[i].ID == variantID {
			return &p.Variants[i]
		}
	}
	return nil
}

// PricingInput assembles the pricing calculator input for ordering quantity
// units of the product, optionally in the given variant.
func (p *Product) PricingInput(variant *Variant, quantity int) pricing.Input {
	in := pricing.Input{
		BasePrice:   p.BasePrice,
		DiscountPct: p.DiscountPct,
		Tiers:       p.Tiers,
		Quantity:    quantity,
	}
	if variant != nil {
		in.VariantAdjustment = variant.PriceAdjustment
		in.QuantityOptions = variant.QuantityOptions
	}
	return in
}
