package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// productProjection shapes CMS product documents into the Product model.
// Field aliases line up with the model's JSON tags so the query result
// unmarshals directly.
const productProjection = `{
  "id": _id,
  "slug": slug.current,
  "name": name,
  "description": description,
  "sku": sku,
  "base_price": basePrice,
  "discount_pct": discountPercentage,
  "currency": coalesce(currency, "EUR"),
  "in_stock": coalesce(inStock, true),
  "category": category->slug.current,
  "images": images[].asset->url,
  "variants": variants[]{
    "id": _key,
    "name": name,
    "sku": sku,
    "price_adjustment": coalesce(priceAdjustment, 0),
    "quantity_options": quantityOptions[]{
      "quantity": quantity,
      "price_per_unit": pricePerUnit
    }
  },
  "pricing_tiers": pricingTiers[]{
    "min_quantity": minQuantity,
    "max_quantity": maxQuantity,
    "discount_pct": coalesce(discountPercentage, 0)
  },
  "seo": seo{ "title": title, "description": description }
}`

const blogPostProjection = `{
  "id": _id,
  "slug": slug.current,
  "title": title,
  "excerpt": excerpt,
  "body": pt::text(body),
  "author": author->name,
  "published_at": publishedAt,
  "seo": seo{ "title": title, "description": description }
}`

type sanityRepository struct {
	client  *http.Client
	baseURL string
	token   string
}

// NewSanityRepository creates a Repository backed by the Sanity query API.
// The token may be empty for public datasets.
func NewSanityRepository(projectID, dataset, token string) Repository {
	return &sanityRepository{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: fmt.Sprintf("https://%s.api.sanity.io/v2024-01-01/data/query/%s", projectID, dataset),
		token:   token,
	}
}

// NewSanityRepositoryWithBaseURL is used by tests to point the client at a
// stub server.
func NewSanityRepositoryWithBaseURL(baseURL, token string) Repository {
	return &sanityRepository{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
		token:   token,
	}
}

func (r *sanityRepository) ListProducts(ctx context.Context, category string) ([]*Product, error) {
	groq := fmt.Sprintf(`*[_type == "product"] | order(name asc) %s`, productProjection)
	if category != "" {
		groq = fmt.Sprintf(`*[_type == "product" && category->slug.current == %q] | order(name asc) %s`,
			category, productProjection)
	}
	var products []*Product
	if err := r.query(ctx, groq, &products); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (r *sanityRepository) GetProductByID(ctx context.Context, id string) (*Product, error) {
	groq := fmt.Sprintf(`*[_type == "product" && _id == %q][0] %s`, id, productProjection)
	return r.queryOneProduct(ctx, groq, id)
}

func (r *sanityRepository) GetProductBySlug(ctx context.Context, slug string) (*Product, error) {
	groq := fmt.Sprintf(`*[_type == "product" && slug.current == %q][0] %s`, slug, productProjection)
	return r.queryOneProduct(ctx, groq, slug)
}

func (r *sanityRepository) ListCategories(ctx context.Context) ([]*Category, error) {
	groq := `*[_type == "category"] | order(name asc) {
	  "id": _id,
	  "slug": slug.current,
	  "name": name,
	  "description": description,
	  "image_url": image.asset->url
	}`
	var categories []*Category
	if err := r.query(ctx, groq, &categories); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (r *sanityRepository) ListBanners(ctx context.Context) ([]*Banner, error) {
	groq := `*[_type == "banner"] | order(_createdAt desc) {
	  "id": _id,
	  "title": title,
	  "subtitle": subtitle,
	  "image_url": image.asset->url,
	  "link_url": linkUrl,
	  "starts_at": startsAt,
	  "ends_at": endsAt
	}`
	var banners []*Banner
	if err := r.query(ctx, groq, &banners); err != nil {
		return nil, fmt.Errorf("list banners: %w", err)
	}
	return banners, nil
}

func (r *sanityRepository) ListAnnouncements(ctx context.Context) ([]*Announcement, error) {
	groq := `*[_type == "announcement"] | order(_createdAt desc) {
	  "id": _id,
	  "message": message,
	  "link_url": linkUrl,
	  "active": coalesce(active, false)
	}`
	var announcements []*Announcement
	if err := r.query(ctx, groq, &announcements); err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	return announcements, nil
}

func (r *sanityRepository) ListBlogPosts(ctx context.Context) ([]*BlogPost, error) {
	groq := fmt.Sprintf(`*[_type == "blogPost" && defined(publishedAt)] | order(publishedAt desc) %s`,
		blogPostProjection)
	var posts []*BlogPost
	if err := r.query(ctx, groq, &posts); err != nil {
		return nil, fmt.Errorf("list blog posts: %w", err)
	}
	return posts, nil
}

func (r *sanityRepository) GetBlogPostBySlug(ctx context.Context, slug string) (*BlogPost, error) {
	groq := fmt.Sprintf(`*[_type == "blogPost" && slug.current == %q][0] %s`, slug, blogPostProjection)
	var post *BlogPost
	if err := r.query(ctx, groq, &post); err != nil {
		return nil, fmt.Errorf("get blog post: %w", err)
	}
	if post == nil {
		return nil, fmt.Errorf("blog post %s not found", slug)
	}
	return post, nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func (r *sanityRepository) queryOneProduct(ctx context.Context, groq, key string) (*Product, error) {
	var product *Product
	if err := r.query(ctx, groq, &product); err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("product %s not found", key)
	}
	return product, nil
}

// query runs a GROQ query against the Sanity HTTP API and unmarshals the
// result envelope into out.
func (r *sanityRepository) query(ctx context.Context, groq string, out interface{}) error {
	u := r.baseURL + "?query=" + url.QueryEscape(groq)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("cms request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cms returned status %d", resp.StatusCode)
	}

	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode cms response: %w", err)
	}
	if len(envelope.Result) == 0 || string(envelope.Result) == "null" {
		return nil
	}
	return json.Unmarshal(envelope.Result, out)
}
