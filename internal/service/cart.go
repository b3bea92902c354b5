package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/greenbasket/sustainability-service/internal/carbon"
	"github.com/greenbasket/sustainability-service/internal/domain"
	"github.com/greenbasket/sustainability-service/internal/model"
)

// cartLine is the per-item fan-out result before aggregation.
type cartLine struct {
	result       domain.CartItemResult
	currentCO2   float64
	optimizedCO2 float64
}

// OptimizeCart recommends the best greener substitute per line item and
// aggregates current vs optimized emissions. Items are processed
// concurrently with a bounded worker pool; unresolvable items are
// skipped, never fatal to the batch.
func (s *Service) OptimizeCart(ctx context.Context, items []domain.CartItem) (*domain.CartOptimizationResult, error) {
	if len(items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	lines := make([]cartLine, len(items))
	var wg sync.WaitGroup
	sem := make(chan struct{}, cartConcurrency) // semaphore

	for i, item := range items {
		wg.Add(1)
		go func(idx int, it domain.CartItem) {
			defer wg.Done()
			sem <- struct{}{}        // acquire
			defer func() { <-sem }() // release

			lines[idx] = s.processCartItem(ctx, it)
		}(i, item)
	}
	wg.Wait()

	// Join point: partial sums combine only after all items resolved.
	result := &domain.CartOptimizationResult{
		Items: make([]domain.CartItemResult, 0, len(lines)),
	}
	var current, optimized float64
	for _, line := range lines {
		result.Items = append(result.Items, line.result)
		current += line.currentCO2
		optimized += line.optimizedCO2
	}

	result.CurrentTotalCO2Kg = carbon.Round3(current)
	result.OptimizedTotalCO2Kg = carbon.Round3(optimized)
	result.TotalSavedKg = carbon.Round3(carbon.Savings(current, optimized))
	result.ImpactMessage = fmt.Sprintf("Your cart emits ~%.2f kg CO₂. Switching to greener alternatives would save %.2f kg.",
		result.CurrentTotalCO2Kg, result.TotalSavedKg)

	return result, nil
}

func (s *Service) processCartItem(ctx context.Context, item domain.CartItem) cartLine {
	qty := item.Qty
	if qty <= 0 {
		qty = 1
	}

	product, err := s.products.GetProductByID(ctx, item.ProductID)
	if err != nil {
		if !errors.Is(err, domain.ErrProductNotFound) {
			log.Printf("[service] cart: lookup failed for product %s: %v", item.ProductID, err)
		}
		return cartLine{result: domain.CartItemResult{ProductID: item.ProductID, Qty: qty, Skipped: true}}
	}

	currentCO2, err := carbon.EstimateAtReference(product.EmissionFactor, product.WeightKg, qty)
	if err != nil {
		log.Printf("[service] cart: estimate failed for product %s: %v", item.ProductID, err)
		return cartLine{result: domain.CartItemResult{ProductID: item.ProductID, Qty: qty, Skipped: true}}
	}

	line := cartLine{
		result: domain.CartItemResult{
			ProductID: product.ProductID,
			Name:      product.Name,
			Qty:       qty,
			CO2Kg:     currentCO2,
		},
		currentCO2:   currentCO2,
		optimizedCO2: currentCO2,
	}

	substitute := s.bestSubstitute(ctx, product)
	if substitute == nil {
		return line
	}

	subCO2, err := carbon.EstimateAtReference(substitute.Product.EmissionFactor, substitute.Product.WeightKg, qty)
	if err != nil {
		log.Printf("[service] cart: estimate failed for substitute %s: %v", substitute.Product.ProductID, err)
		return line
	}

	rec, err := s.formatRecommendation(*substitute, currentCO2, qty)
	if err != nil {
		log.Printf("[service] cart: format failed for substitute %s: %v", substitute.Product.ProductID, err)
		return line
	}

	line.result.Substitute = &rec
	line.optimizedCO2 = subCO2
	return line
}

// bestSubstitute returns the top-ranked strictly greener candidate in
// the product's category, or nil when none qualifies.
func (s *Service) bestSubstitute(ctx context.Context, product *domain.Product) *model.ScoredCandidate {
	candidates, err := s.candidatePool(ctx, product)
	if errors.Is(err, domain.ErrEmptyCatalog) {
		return nil
	}
	if err != nil {
		log.Printf("[service] cart: candidate pool failed for product %s: %v", product.ProductID, err)
		return nil
	}

	population := make([]domain.Product, 0, len(candidates)+1)
	population = append(population, *product)
	population = append(population, candidates...)
	vectors := model.BuildVectors(population, s.maxVocab)

	ranked := s.ranker.Rank(*product, vectors[0], candidates, vectors[1:], 1)
	if len(ranked) == 0 || !ranked[0].Greener {
		return nil
	}
	return &ranked[0]
}
