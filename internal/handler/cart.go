package handler

import (
	"encoding/json"
	"net/http"

	"github.com/greenbasket/sustainability-service/internal/domain"
)

type cartRequest struct {
	Items []domain.CartItem `json:"cart_items"`
}

// POST /cart/optimize
func (h *Handler) OptimizeCart(w http.ResponseWriter, r *http.Request) {
	var req cartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Malformed JSON body")
		return
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "invalid_input", "No cart items provided")
		return
	}

	result, err := h.service.OptimizeCart(r.Context(), req.Items)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
