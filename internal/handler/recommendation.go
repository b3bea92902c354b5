package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/greenbasket/sustainability-service/internal/domain"
)

// GET /products/{productID}/recommendations
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")
	if productID == "" {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Missing productID parameter")
		return
	}

	// Parse and validate k
	k := 5
	if kStr := r.URL.Query().Get("k"); kStr != "" {
		parsed, err := strconv.Atoi(kStr)
		if err != nil || parsed < 1 || parsed > 20 {
			writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid k parameter")
			return
		}
		k = parsed
	}

	result, err := h.service.GetRecommendations(r.Context(), productID, k)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := RecommendationResponse{
		Base:            result.Base,
		Recommendations: result.Recommendations,
		Message:         result.Message,
		Metadata: domain.RecommendationMeta{
			CacheHit:    result.CacheHit,
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			TotalCount:  len(result.Recommendations),
		},
	}

	writeJSON(w, http.StatusOK, resp)
}
