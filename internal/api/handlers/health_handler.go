package handlers

import (
	"context"
	"net/http"

	"github.com/ctrlz-health/carefinder/pkg/config"
)

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports service health and which provider credentials are
// configured, without revealing the credentials themselves.
type HealthHandler struct {
	cfg   *config.Config
	redis Pinger
}

// NewHealthHandler creates a new health handler. redis may be nil when the
// service runs on the in-process cache.
func NewHealthHandler(cfg *config.Config, redis Pinger) *HealthHandler {
	return &HealthHandler{cfg: cfg, redis: redis}
}

// Health handles GET /api/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	apis := map[string]string{
		"geocoding": configured(h.cfg.Geolocation.APIKey != "" || h.cfg.Geolocation.Provider == "mock"),
		"places":    configured(h.cfg.Places.APIKey != ""),
		"openai":    configured(h.cfg.OpenAI.APIKey != ""),
	}

	cache := "memory"
	if h.redis != nil {
		if err := h.redis.Ping(r.Context()); err == nil {
			cache = "redis"
		} else {
			cache = "redis (unreachable)"
		}
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status": "healthy",
		"apis":   apis,
		"cache":  cache,
	})
}

func configured(ok bool) string {
	if ok {
		return "configured"
	}
	return "missing"
}
