package handler

import (
	"encoding/json"
	"net/http"

	"github.com/greenbasket/sustainability-service/internal/predictor"
)

// POST /predict
func (h *Handler) PredictSustainability(w http.ResponseWriter, r *http.Request) {
	var in predictor.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Malformed JSON body")
		return
	}

	result, err := h.service.PredictSustainability(r.Context(), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
