package catalog

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	banners       []*Banner
	announcements []*Announcement
	products      []*Product
}

func (f *fakeRepo) ListProducts(ctx context.Context, category string) ([]*Product, error) {
	if category == "" {
		return f.products, nil
	}
	var out []*Product
	for _, p := range f.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetProductByID(ctx context.Context, id string) (*Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("product %s not found", id)
}

func (f *fakeRepo) GetProductBySlug(ctx context.Context, slug string) (*Product, error) {
	for _, p := range f.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, fmt.Errorf("product %s not found", slug)
}

func (f *fakeRepo) ListCategories(ctx context.Context) ([]*Category, error) { return nil, nil }
func (f *fakeRepo) ListBanners(ctx context.Context) ([]*Banner, error)      { return f.banners, nil }
func (f *fakeRepo) ListAnnouncements(ctx context.Context) ([]*Announcement, error) {
	return f.announcements, nil
}
func (f *fakeRepo) ListBlogPosts(ctx context.Context) ([]*BlogPost, error) { return nil, nil }
func (f *fakeRepo) GetBlogPostBySlug(ctx context.Context, slug string) (*BlogPost, error) {
	return nil, fmt.Errorf("blog post %s not found", slug)
}

func TestListActiveBanners_WindowFiltering(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)

	repo := &fakeRepo{banners: []*Banner{
		{ID: "always"},
		{ID: "live", StartsAt: &past, EndsAt: &future},
		{ID: "expired", EndsAt: &past},
		{ID: "upcoming", StartsAt: &future},
	}}
	svc := NewService(repo)

	banners, err := svc.ListActiveBanners(context.Background(), now)
	require.NoError(t, err)

	ids := make([]string, 0, len(banners))
	for _, b := range banners {
		ids = append(ids, b.ID)
	}
	assert.ElementsMatch(t, []string{"always", "live"}, ids)
}

func TestListActiveAnnouncements_DropsInactive(t *testing.T) {
	repo := &fakeRepo{announcements: []*Announcement{
		{ID: "a", Message: "Free shipping over 250", Active: true},
		{ID: "b", Message: "Old promo", Active: false},
	}}
	svc := NewService(repo)

	got, err := svc.ListActiveAnnouncements(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}

func TestFindVariant(t *testing.T) {
	p := &Product{Variants: []Variant{
		{ID: "v1", Name: "Small"},
		{ID: "v2", Name: "Large", PriceAdjustment: 2},
	}}

	v := p.FindVariant("v2")
	require.NotNil(t, v)
	assert.Equal(t, "Large", v.Name)
	assert.Nil(t, p.FindVariant("missing"))
}

func TestPricingInput_CarriesVariantFields(t *testing.T) {
	p := &Product{BasePrice: 10, Variants: []Variant{{ID: "v1", PriceAdjustment: 2}}}
	in := p.PricingInput(p.FindVariant("v1"), 60)
	assert.Equal(t, 10.0, in.BasePrice)
	assert.Equal(t, 2.0, in.VariantAdjustment)
	assert.Equal(t, 60, in.Quantity)
}
