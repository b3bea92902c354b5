package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/greenbasket/sustainability-service/internal/service"
)

// POST /orders
func (h *Handler) RecordOrder(w http.ResponseWriter, r *http.Request) {
	var req service.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Malformed JSON body")
		return
	}

	receipt, err := h.service.RecordOrder(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	status := http.StatusCreated
	if receipt.AlreadyRecorded {
		status = http.StatusOK
	}
	writeJSON(w, status, receipt)
}

// GET /users/{userID}/summary
func (h *Handler) GetUserSummary(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Missing userID parameter")
		return
	}

	summary, err := h.service.GetUserSummary(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
