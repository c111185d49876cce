package handler

import (
	"net/http"
	"time"

	"miniheureka/storefront/internal/render"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter creates a chi router with the storefront pages, static assets and
// operational endpoints registered.
func NewRouter(pages *Pages, health *Health, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(Recovery)
	r.Use(RequestLogging)
	r.Use(PrometheusMetrics)

	r.Get("/health/live", health.Live)
	r.Get("/health/ready", health.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.Compress(5))
		r.Use(middleware.Timeout(requestTimeout))

		r.Get("/", pages.Index)
		r.Get("/index.html", pages.Index)
		r.Get("/category.html", pages.Category)
		r.Get("/product.html", pages.Product)
		r.Handle("/static/*", render.Static())
	})

	r.NotFound(pages.NotFound)

	return r
}
