package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/greenbasket/sustainability-service/internal/handler"
)

func Setup(h *handler.Handler) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// Routes
	r.Get("/products/{productID}/recommendations", h.GetRecommendations)
	r.Get("/products/{productID}/insight", h.GetInsight)
	r.Get("/carbon/estimate", h.EstimateEmission)
	r.Post("/cart/optimize", h.OptimizeCart)
	r.Post("/orders", h.RecordOrder)
	r.Get("/users/{userID}/summary", h.GetUserSummary)
	r.Get("/summary/global", h.GetGlobalSummary)
	r.Post("/predict", h.PredictSustainability)
	r.Get("/health", healthCheck)

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
