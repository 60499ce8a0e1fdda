package catalog

import (
	"context"
	"fmt"
	"time"
)

// Service defines catalog business logic.
type Service interface {
	ListProducts(ctx context.Context, category string) ([]*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*Product, error)
	ListCategories(ctx context.Context) ([]*Category, error)
	// ListActiveBanners returns banners whose display window contains now.
	ListActiveBanners(ctx context.Context, now time.Time) ([]*Banner, error)
	ListActiveAnnouncements(ctx context.Context) ([]*Announcement, error)
	ListBlogPosts(ctx context.Context) ([]*BlogPost, error)
	GetBlogPost(ctx context.Context, slug string) (*BlogPost, error)
}

type service struct{ repo Repository }

// NewService creates a new catalog service.
func NewService(repo Repository) Service { return &service{repo: repo} }

func (s *service) ListProducts(ctx context.Context, category string) ([]*Product, error) {
	return s.repo.ListProducts(ctx, category)
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	if id == "" {
		return nil, fmt.Errorf("product id is required")
	}
	return s.repo.GetProductByID(ctx, id)
}

func (s *service) GetProductBySlug(ctx context.Context, slug string) (*Product, error) {
	if slug == "" {
		return nil, fmt.Errorf("product slug is required")
	}
	return s.repo.GetProductBySlug(ctx, slug)
}

func (s *service) ListCategories(ctx context.Context) ([]*Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *service) ListActiveBanners(ctx context.Context, now time.Time) ([]*Banner, error) {
	banners, err := s.repo.ListBanners(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]*Banner, 0, len(banners))
	for _, b := range banners {
		if b.StartsAt != nil && now.Before(*b.StartsAt) {
			continue
		}
		if b.EndsAt != nil && now.After(*b.EndsAt) {
			continue
		}
		active = append(active, b)
	}
	return active, nil
}

func (s *service) ListActiveAnnouncements(ctx context.Context) ([]*Announcement, error) {
	announcements, err := s.repo.ListAnnouncements(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]*Announcement, 0, len(announcements))
	for _, a := range announcements {
		if a.Active {
			active = append(active, a)
		}
	}
	return active, nil
}

func (s *service) ListBlogPosts(ctx context.Context) ([]*BlogPost, error) {
	return s.repo.ListBlogPosts(ctx)
}

func (s *service) GetBlogPost(ctx context.Context, slug string) (*BlogPost, error) {
	if slug == "" {
		return nil, fmt.Errorf("blog post slug is required")
	}
	return s.repo.GetBlogPostBySlug(ctx, slug)
}
