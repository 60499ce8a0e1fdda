package catalog

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// Handler exposes catalog HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/products", h.listProducts)            // GET /api/v1/catalog/products?category=boxes
		r.Get("/products/{slug}", h.getProductBySlug) // GET /api/v1/catalog/products/{slug}
		r.Get("/categories", h.listCategories)        // GET /api/v1/catalog/categories
		r.Get("/banners", h.listBanners)              // GET /api/v1/catalog/banners
		r.Get("/announcements", h.listAnnouncements)  // GET /api/v1/catalog/announcements
		r.Get("/blog", h.listBlogPosts)               // GET /api/v1/catalog/blog
		r.Get("/blog/{slug}", h.getBlogPost)          // GET /api/v1/catalog/blog/{slug}
	})
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	products, err := h.service.ListProducts(r.Context(), category)
	if err != nil {
		respond(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, products)
}

func (h *Handler) getProductBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	product, err := h.service.GetProductBySlug(r.Context(), slug)
	if err != nil {
		code := http.StatusBadGateway
		if strings.Contains(err.Error(), "not found") {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, product)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		respond(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, categories)
}

func (h *Handler) listBanners(w http.ResponseWriter, r *http.Request) {
	banners, err := h.service.ListActiveBanners(r.Context(), time.Now())
	if err != nil {
		respond(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, banners)
}

func (h *Handler) listAnnouncements(w http.ResponseWriter, r *http.Request) {
	announcements, err := h.service.ListActiveAnnouncements(r.Context())
	if err != nil {
		respond(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, announcements)
}

func (h *Handler) listBlogPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListBlogPosts(r.Context())
	if err != nil {
		respond(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, posts)
}

func (h *Handler) getBlogPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	post, err := h.service.GetBlogPost(r.Context(), slug)
	if err != nil {
		code := http.StatusBadGateway
		if strings.Contains(err.Error(), "not found") {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, post)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
