package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/packline/packline-backend/internal/modules/address"
	"github.com/packline/packline-backend/internal/modules/analytics"
	"github.com/packline/packline-backend/internal/modules/auth"
	"github.com/packline/packline-backend/internal/modules/b2b"
	"github.com/packline/packline-backend/internal/modules/cart"
	"github.com/packline/packline-backend/internal/modules/catalog"
	"github.com/packline/packline-backend/internal/modules/customer"
	"github.com/packline/packline-backend/internal/modules/order"
	"github.com/packline/packline-backend/internal/modules/user"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	db, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Successfully connected to the database!")

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	authMW := auth.NewMiddleware(os.Getenv("JWT_SECRET"))

	// ── Phase 1: Identity ───────────────────────────────────
	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)
	userHandler.RegisterRoutes(router)

	authService := auth.NewService(userRepo, os.Getenv("JWT_SECRET"))
	auth.NewHandler(authService).RegisterRoutes(router)

	// ── Phase 2: Catalog (headless CMS, read-only) ──────────
	catalogRepo := catalog.NewSanityRepository(
		os.Getenv("SANITY_PROJECT_ID"),
		os.Getenv("SANITY_DATASET"),
		os.Getenv("SANITY_API_TOKEN"),
	)
	catalogService := catalog.NewService(catalogRepo)
	catalog.NewHandler(catalogService).RegisterRoutes(router)

	// ── Phase 3: Cart & Checkout ────────────────────────────
	cartRepo := cart.NewPostgresRepository(db)
	cartService := cart.NewService(cartRepo, catalogService)
	cartHandler := cart.NewHandler(cartService)

	orderRepo := order.NewPostgresRepository(db)
	orderService := order.NewService(orderRepo, cartService, catalogService, order.Config{
		VATRate:               envFloat("VAT_RATE", 0.21),
		ShippingFlatRate:      envFloat("SHIPPING_FLAT_RATE", 4.95),
		FreeShippingThreshold: envFloat("FREE_SHIPPING_THRESHOLD", 250),
		Currency:              os.Getenv("CURRENCY"),
	})
	orderHandler := order.NewHandler(orderService)

	addressRepo := address.NewPostgresRepository(db)
	addressService := address.NewService(addressRepo)
	addressHandler := address.NewHandler(addressService)

	// ── Phase 4: B2B Quote Pipeline ─────────────────────────
	b2bRepo := b2b.NewPostgresRepository(db)
	b2bService := b2b.NewService(b2bRepo)
	b2bHandler := b2b.NewHandler(b2bService)
	b2bHandler.RegisterRoutes(router)

	// ── Phase 5: Back Office ────────────────────────────────
	analyticsHandler := analytics.NewHandler(analytics.NewService(orderService))

	customerRepo := customer.NewPostgresRepository(db)
	customerService := customer.NewService(customerRepo, orderService)
	customerHandler := customer.NewHandler(customerService)

	// ── Protected storefront routes ─────────────────────────
	router.Group(func(r chi.Router) {
		r.Use(authMW.RequireAuth)
		userHandler.RegisterProtectedRoutes(r)
		cartHandler.RegisterProtectedRoutes(r)
		orderHandler.RegisterProtectedRoutes(r)
		addressHandler.RegisterProtectedRoutes(r)
	})

	// ── Admin routes ────────────────────────────────────────
	router.Group(func(r chi.Router) {
		r.Use(authMW.RequireAdmin)
		orderHandler.RegisterAdminRoutes(r)
		b2bHandler.RegisterAdminRoutes(r)
		analyticsHandler.RegisterAdminRoutes(r)
		customerHandler.RegisterAdminRoutes(r)
	})

	// ── Start Server ────────────────────────────────────────
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Printf("Packline API server starting on :%s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}

func envFloat(key string, fallback float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Fatalf("invalid %s: %v", key, err)
	}
	return v
}
