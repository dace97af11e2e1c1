package api

import (
	"designer-finder-service/internal/api/handlers"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// Handlers only see the service interfaces, never concrete adapters.
func NewRouter(designers handlers.DesignerManager, search handlers.Searcher, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(loggingMiddleware(log))
	r.Use(recoverer)
	r.Use(metricsMiddleware)

	designerHandler := &handlers.DesignerHandler{Designers: designers}
	searchHandler := &handlers.SearchHandler{Service: search}

	r.Get("/health", handlers.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/designers", func(r chi.Router) {
		r.Get("/", designerHandler.List)
		r.Post("/", designerHandler.Create)
		r.Delete("/{id}", designerHandler.Delete)
	})
	r.Post("/search", searchHandler.Search)

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	return r
}
