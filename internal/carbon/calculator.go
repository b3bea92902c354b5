package carbon

import (
	"math"

	"github.com/greenbasket/sustainability-service/internal/domain"
)

const (
	// DefaultTransportFactor is kg CO₂ per kg shipped per km.
	DefaultTransportFactor = 0.0002

	// ReferenceDistanceKm normalizes emission comparisons across products.
	ReferenceDistanceKm = 100.0
)

// Estimate returns the CO₂ in kg for a purchase: material emission plus
// transport emission, rounded to 3 decimal places. Negative inputs are
// rejected with domain.ErrInvalidInput.
func Estimate(materialFactor, weightKg, qty, distanceKm, transportFactor float64) (float64, error) {
	if materialFactor < 0 || weightKg < 0 || qty < 0 || distanceKm < 0 || transportFactor < 0 {
		return 0, domain.ErrInvalidInput
	}

	materialEmission := materialFactor * weightKg * qty
	transportEmission := transportFactor * weightKg * qty * distanceKm

	return Round3(materialEmission + transportEmission), nil
}

// EstimateAtReference estimates emission at the fixed reference
// distance with the default transport factor.
func EstimateAtReference(materialFactor, weightKg, qty float64) (float64, error) {
	return Estimate(materialFactor, weightKg, qty, ReferenceDistanceKm, DefaultTransportFactor)
}

// Savings is the non-negative delta between baseline and actual
// emission. A worse alternative clamps to zero saved, never a penalty.
func Savings(baseline, actual float64) float64 {
	return math.Max(baseline-actual, 0)
}

// Round3 rounds to the 3-decimal precision used for reported CO₂ values.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
