package handler

import "github.com/greenbasket/sustainability-service/internal/domain"

type RecommendationResponse struct {
	Base            domain.BaseProductSummary `json:"base_product"`
	Recommendations []domain.Recommendation   `json:"recommendations"`
	Message         string                    `json:"message,omitempty"`
	Metadata        domain.RecommendationMeta `json:"metadata"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
