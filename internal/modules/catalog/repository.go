package catalog

import "context"

// Repository defines read-only access to the CMS content store.
type Repository interface {
	// ListProducts returns catalog products, optionally filtered by category slug.
	ListProducts(ctx context.Context, category string) ([]*Product, error)

	// GetProductByID retrieves a single product by its CMS document id.
	GetProductByID(ctx context.Context, id string) (*Product, error)

	// GetProductBySlug retrieves a single product by its storefront slug.
	GetProductBySlug(ctx context.Context, slug string) (*Product, error)

	// ListCategories returns all catalog categories.
	ListCategories(ctx context.Context) ([]*Category, error)

	// ListBanners returns all banners regardless of display window.
	ListBanners(ctx context.Context) ([]*Banner, error)

	// ListAnnouncements returns all announcement documents.
	ListAnnouncements(ctx context.Context) ([]*Announcement, error)

	// ListBlogPosts returns published blog posts, newest first.
	ListBlogPosts(ctx context.Context) ([]*BlogPost, error)

	// GetBlogPostBySlug retrieves a single published blog post.
	GetBlogPostBySlug(ctx context.Context, slug string) (*BlogPost, error)
}
