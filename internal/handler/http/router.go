package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gabriel447/ProductExplorer/pkg/health"
	"github.com/gabriel447/ProductExplorer/pkg/middleware"
)

// NewRouter creates a chi router with all explorer routes registered.
func NewRouter(
	catalogHandler *CatalogHandler,
	cartHandler *CartHandler,
	healthHandler *health.Handler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics("explorer"))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Catalog API endpoints
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Get("/products", catalogHandler.ListProducts)
		r.Post("/products/refresh", catalogHandler.Refresh)
		r.Get("/products/{productID}", catalogHandler.GetProduct)
		r.Get("/categories", catalogHandler.ListCategories)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)

			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{productID}", cartHandler.UpdateItemQuantity)
			r.Delete("/items/{productID}", cartHandler.RemoveItem)
			r.Post("/items/{productID}/increase", cartHandler.IncreaseItem)
			r.Post("/items/{productID}/decrease", cartHandler.DecreaseItem)
		})
	})

	return r
}
