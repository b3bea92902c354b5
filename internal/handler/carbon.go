package handler

import (
	"net/http"
	"strconv"
)

// GET /carbon/estimate?productId=&qty=&distance=
func (h *Handler) EstimateEmission(w http.ResponseWriter, r *http.Request) {
	productID := r.URL.Query().Get("productId")
	if productID == "" {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Missing productId parameter")
		return
	}

	qty := 1.0
	if qtyStr := r.URL.Query().Get("qty"); qtyStr != "" {
		parsed, err := strconv.ParseFloat(qtyStr, 64)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid qty parameter")
			return
		}
		qty = parsed
	}

	distance := 100.0
	if distStr := r.URL.Query().Get("distance"); distStr != "" {
		parsed, err := strconv.ParseFloat(distStr, 64)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid distance parameter")
			return
		}
		distance = parsed
	}

	result, err := h.service.EstimateEmission(r.Context(), productID, qty, distance)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
