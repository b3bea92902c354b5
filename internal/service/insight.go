package service

import (
	"context"
	"fmt"
	"math"

	"github.com/greenbasket/sustainability-service/internal/carbon"
	"github.com/greenbasket/sustainability-service/internal/domain"
)

// GetInsight compares a product's emission against its category
// average at the reference distance. A category without peers, or with
// a zero average, yields a defined "no comparison" result instead of a
// division error.
func (s *Service) GetInsight(ctx context.Context, productID string) (*domain.InsightResult, error) {
	product, err := s.products.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	co2, err := carbon.EstimateAtReference(product.EmissionFactor, product.WeightKg, 1)
	if err != nil {
		return nil, fmt.Errorf("estimate emission: %w", err)
	}

	tag := carbon.ImpactTagFor(product.EcoScore)
	result := &domain.InsightResult{
		ProductID: product.ProductID,
		Category:  product.Category,
		EcoScore:  product.EcoScore,
		ImpactTag: string(tag),
		CO2Kg:     co2,
	}

	peers, err := s.products.ListProductsByCategory(ctx, product.Category)
	if err != nil {
		return nil, fmt.Errorf("fetch category peers: %w", err)
	}

	avg, ok := categoryAverageCO2(peers)
	if len(peers) <= 1 || !ok {
		result.ImpactMessage = fmt.Sprintf("This product emits %.2f kg CO₂ per %.0f km shipped. No category comparison available.",
			co2, carbon.ReferenceDistanceKm)
		return result, nil
	}

	diff := (avg - co2) / avg * 100
	result.HasComparison = true
	result.DifferencePct = math.Round(diff*10) / 10

	direction := "cleaner"
	if diff < 0 {
		direction = "higher"
	}
	result.ImpactMessage = fmt.Sprintf("This product emits %.2f kg CO₂ per %.0f km shipped — %.1f%% %s than its category average. %s",
		co2, carbon.ReferenceDistanceKm, math.Abs(result.DifferencePct), direction, carbon.Tone(tag))

	return result, nil
}

// categoryAverageCO2 averages peer emissions at the reference
// distance; ok is false for an empty or zero-average category.
func categoryAverageCO2(peers []domain.Product) (float64, bool) {
	if len(peers) == 0 {
		return 0, false
	}

	var sum float64
	for _, p := range peers {
		co2, err := carbon.EstimateAtReference(p.EmissionFactor, p.WeightKg, 1)
		if err != nil {
			continue
		}
		sum += co2
	}

	avg := sum / float64(len(peers))
	if avg == 0 {
		return 0, false
	}
	return avg, true
}
