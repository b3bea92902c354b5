// Package predictor talks to the offline-trained eco/emission model
// service. The models themselves (random-forest regressors) live
// outside this repo; this is only the inference client.
package predictor

import (
	"context"
	"errors"
)

type Input struct {
	Category string  `json:"category"`
	Material string  `json:"material"`
	Weight   float64 `json:"weight"`
	Price    float64 `json:"price"`
}

type Result struct {
	EcoScore       float64 `json:"predicted_eco_score"`
	EmissionFactor float64 `json:"predicted_emission_factor"`
}

type Predictor interface {
	Predict(ctx context.Context, in Input) (Result, error)
}

type PredictionError struct {
	Msg string
}

func (e *PredictionError) Error() string {
	return e.Msg
}

func IsPredictionError(err error) bool {
	var target *PredictionError
	return errors.As(err, &target)
}
