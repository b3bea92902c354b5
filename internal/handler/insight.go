package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// GET /products/{productID}/insight
func (h *Handler) GetInsight(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")
	if productID == "" {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Missing productID parameter")
		return
	}

	result, err := h.service.GetInsight(r.Context(), productID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
