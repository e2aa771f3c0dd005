package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ctrlz-health/carefinder/internal/application/services"
	"github.com/ctrlz-health/carefinder/internal/domain/entities"
	"github.com/ctrlz-health/carefinder/internal/infrastructure/observability"
	apperrors "github.com/ctrlz-health/carefinder/pkg/errors"
)

// SearchHandler handles the facility search endpoints.
type SearchHandler struct {
	service *services.SearchService
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(service *services.SearchService) *SearchHandler {
	return &SearchHandler{service: service}
}

// Search handles POST /api/search
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req entities.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	response, err := h.service.Search(r.Context(), &req)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, response)
}

type sortRequest struct {
	Facilities []*entities.RankedFacility `json:"facilities"`
	SortBy     string                     `json:"sort_by"`
}

// SortFacilities handles POST /api/facilities/sort
func (h *SearchHandler) SortFacilities(w http.ResponseWriter, r *http.Request) {
	var req sortRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sorted, err := h.service.Sort(req.Facilities, req.SortBy)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"facilities": sorted,
		"sort_by":    req.SortBy,
	})
}

// respondWithAppError maps the error taxonomy to HTTP statuses. Only
// validation failures and internal faults reach here; everything else
// degrades inside a 200 upstream.
func respondWithAppError(w http.ResponseWriter, r *http.Request, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		switch appErr.Type {
		case apperrors.ErrorTypeValidation:
			respondWithError(w, http.StatusBadRequest, appErr.Message)
			return
		default:
			observability.LoggerFromContext(r.Context()).Error().Err(appErr).Msg("request failed")
			respondWithError(w, http.StatusInternalServerError, "internal error")
			return
		}
	}
	observability.LoggerFromContext(r.Context()).Error().Err(err).Msg("request failed")
	respondWithError(w, http.StatusInternalServerError, "internal error")
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}
