package routes

import (
	"net/http"

	"github.com/ctrlz-health/carefinder/internal/api/handlers"
	"github.com/ctrlz-health/carefinder/internal/api/middleware"
	"github.com/ctrlz-health/carefinder/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	searchHandler *handlers.SearchHandler
	healthHandler *handlers.HealthHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	searchHandler *handlers.SearchHandler,
	healthHandler *handlers.HealthHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:           http.NewServeMux(),
		searchHandler: searchHandler,
		healthHandler: healthHandler,
		metrics:       metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /", func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/" {
			http.NotFound(w, req)
			return
		}
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	r.mux.HandleFunc("GET /api/health", r.healthHandler.Health)

	// Search endpoints
	r.mux.HandleFunc("POST /api/search", r.searchHandler.Search)
	r.mux.HandleFunc("POST /api/facilities/sort", r.searchHandler.SortFacilities)

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS must be outermost so even failed requests get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.RequestIDMiddleware(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
