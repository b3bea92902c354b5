package handler

import (
	"net/http"
	"strconv"
)

// GET /summary/global?days=&top_k=
func (h *Handler) GetGlobalSummary(w http.ResponseWriter, r *http.Request) {
	days := 30
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		parsed, err := strconv.Atoi(daysStr)
		if err != nil || parsed < 1 || parsed > 365 {
			writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid days parameter")
			return
		}
		days = parsed
	}

	topK := 5
	if topKStr := r.URL.Query().Get("top_k"); topKStr != "" {
		parsed, err := strconv.Atoi(topKStr)
		if err != nil || parsed < 1 || parsed > 50 {
			writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid top_k parameter")
			return
		}
		topK = parsed
	}

	summary, err := h.service.GetGlobalSummary(r.Context(), days, topK)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
