package service

import (
	"context"
	"math"

	"github.com/greenbasket/sustainability-service/internal/domain"
	"github.com/greenbasket/sustainability-service/internal/predictor"
)

// PredictSustainability asks the offline-trained model service for an
// eco score and emission factor of a hypothetical product. The models
// are an external oracle; this layer only validates and rounds.
func (s *Service) PredictSustainability(ctx context.Context, in predictor.Input) (*predictor.Result, error) {
	if in.Category == "" || in.Material == "" || in.Weight <= 0 || in.Price <= 0 {
		return nil, domain.ErrInvalidInput
	}

	res, err := s.predictor.Predict(ctx, in)
	if err != nil {
		return nil, err
	}

	res.EcoScore = math.Round(res.EcoScore*100) / 100
	res.EmissionFactor = math.Round(res.EmissionFactor*100) / 100
	return &res, nil
}
