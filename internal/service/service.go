package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/greenbasket/sustainability-service/internal/carbon"
	"github.com/greenbasket/sustainability-service/internal/domain"
	"github.com/greenbasket/sustainability-service/internal/model"
	"github.com/greenbasket/sustainability-service/internal/predictor"
)

const (
	defaultK          = 5
	maxK              = 20
	cartConcurrency   = 8
	recentOrdersLimit = 10

	defaultSummaryDays = 30
	defaultSummaryTopK = 5
)

// ProductStore is the catalog collaborator. Snapshots are loaded fresh
// per request; the service never caches products.
type ProductStore interface {
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)
	ListProductsByCategory(ctx context.Context, category string) ([]domain.Product, error)
	ListAllProducts(ctx context.Context) ([]domain.Product, error)
}

// OrderStore owns order and user-footprint persistence.
type OrderStore interface {
	OrderExists(ctx context.Context, orderID string) (bool, error)
	InsertOrder(ctx context.Context, order domain.Order) error
	UpsertUserFootprint(ctx context.Context, userID string, co2Kg, co2SavedKg float64) error
	GetUserFootprint(ctx context.Context, userID string) (*domain.UserFootprint, error)
	ListRecentOrders(ctx context.Context, userID string, limit int) ([]domain.Order, error)
	GlobalTotals(ctx context.Context) (*domain.GlobalTotals, error)
	EmissionsByDay(ctx context.Context, days int) ([]domain.DailyEmission, error)
	TopUsersBySavings(ctx context.Context, limit int) ([]domain.TopUser, error)
	TopProductsByEcoScore(ctx context.Context, limit int) ([]domain.TopProduct, error)
}

// RecommendationCache is the response cache; a nil cache disables it.
type RecommendationCache interface {
	Get(ctx context.Context, productID string, k int) (*domain.RecommendationResult, bool, error)
	Set(ctx context.Context, productID string, k int, result *domain.RecommendationResult) error
	ClearAll(ctx context.Context) error
}

type Service struct {
	products  ProductStore
	orders    OrderStore
	cache     RecommendationCache
	ranker    *model.Ranker
	predictor predictor.Predictor
	maxVocab  int
}

func NewService(products ProductStore, orders OrderStore, cache RecommendationCache, ranker *model.Ranker, pred predictor.Predictor, maxVocab int) *Service {
	return &Service{
		products:  products,
		orders:    orders,
		cache:     cache,
		ranker:    ranker,
		predictor: pred,
		maxVocab:  maxVocab,
	}
}

func (s *Service) GetRecommendations(ctx context.Context, productID string, k int) (*domain.RecommendationResult, error) {
	if k <= 0 {
		k = defaultK
	} else if k > maxK {
		k = maxK
	}

	// Check cache
	if s.cache != nil {
		cached, found, err := s.cache.Get(ctx, productID, k)
		if err != nil {
			log.Printf("[service] cache get error for product %s: %v", productID, err)
		}
		if found {
			return cached, nil
		}
	}

	// Cache miss -> rank against a fresh catalog snapshot
	result, err := s.buildRecommendations(ctx, productID, k)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if cacheErr := s.cache.Set(ctx, productID, k, result); cacheErr != nil {
			log.Printf("[service] cache set error for product %s: %v", productID, cacheErr)
		}
	}

	return result, nil
}

func (s *Service) buildRecommendations(ctx context.Context, productID string, k int) (*domain.RecommendationResult, error) {
	base, err := s.products.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	baseCO2, err := carbon.EstimateAtReference(base.EmissionFactor, base.WeightKg, 1)
	if err != nil {
		return nil, fmt.Errorf("estimate base emission: %w", err)
	}

	result := &domain.RecommendationResult{
		Base: domain.BaseProductSummary{
			ProductID:      base.ProductID,
			Name:           base.Name,
			Category:       base.Category,
			EcoScore:       base.EcoScore,
			EmissionFactor: base.EmissionFactor,
			CO2Kg:          baseCO2,
		},
	}

	candidates, err := s.candidatePool(ctx, base)
	if errors.Is(err, domain.ErrEmptyCatalog) {
		// Recoverable: degrade to an empty list with a message.
		result.Message = fmt.Sprintf("no alternative products found in category %q", base.Category)
		return result, nil
	}
	if err != nil {
		return nil, err
	}

	// Encode base + candidates jointly so vocabulary and scaling are
	// consistent across the population.
	population := make([]domain.Product, 0, len(candidates)+1)
	population = append(population, *base)
	population = append(population, candidates...)
	vectors := model.BuildVectors(population, s.maxVocab)

	ranked := s.ranker.Rank(*base, vectors[0], candidates, vectors[1:], k)

	result.Recommendations = make([]domain.Recommendation, 0, len(ranked))
	for _, rc := range ranked {
		rec, err := s.formatRecommendation(rc, baseCO2, 1)
		if err != nil {
			return nil, err
		}
		result.Recommendations = append(result.Recommendations, rec)
	}
	return result, nil
}

// candidatePool loads same-category products excluding the base itself.
func (s *Service) candidatePool(ctx context.Context, base *domain.Product) ([]domain.Product, error) {
	pool, err := s.products.ListProductsByCategory(ctx, base.Category)
	if err != nil {
		return nil, fmt.Errorf("fetch candidates: %w", err)
	}

	candidates := pool[:0]
	for _, p := range pool {
		if p.ProductID != base.ProductID {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return nil, domain.ErrEmptyCatalog
	}
	return candidates, nil
}

// InvalidateRecommendations drops every cached recommendation
// response. Called after the catalog is reseeded so stale rankings
// never outlive the products they were computed from.
func (s *Service) InvalidateRecommendations(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.ClearAll(ctx)
}

// formatRecommendation turns a scored candidate into the response
// shape: emission at the reference distance, clamped CO₂ savings
// against the base, impact tag and message.
func (s *Service) formatRecommendation(rc model.ScoredCandidate, baseCO2, qty float64) (domain.Recommendation, error) {
	p := rc.Product

	co2, err := carbon.EstimateAtReference(p.EmissionFactor, p.WeightKg, qty)
	if err != nil {
		return domain.Recommendation{}, fmt.Errorf("estimate emission for product %s: %w", p.ProductID, err)
	}

	tag := carbon.ImpactTagFor(p.EcoScore)
	return domain.Recommendation{
		ProductID:      p.ProductID,
		Name:           p.Name,
		Material:       p.Material,
		EcoScore:       p.EcoScore,
		EmissionFactor: p.EmissionFactor,
		WeightKg:       p.WeightKg,
		CO2Kg:          co2,
		CO2SavedKg:     carbon.Round3(carbon.Savings(baseCO2, co2)),
		GreenScore:     rc.GreenScore,
		Greener:        rc.Greener,
		ImpactTag:      string(tag),
		ImpactMessage:  carbon.ImpactMessage(co2, p.Category, tag),
	}, nil
}

// EstimateEmission computes the CO₂ for shipping qty units of a
// product over the given distance.
func (s *Service) EstimateEmission(ctx context.Context, productID string, qty, distanceKm float64) (*domain.EmissionResult, error) {
	if qty < 0 || distanceKm < 0 {
		return nil, domain.ErrInvalidInput
	}

	product, err := s.products.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	co2, err := carbon.Estimate(product.EmissionFactor, product.WeightKg, qty, distanceKm, carbon.DefaultTransportFactor)
	if err != nil {
		return nil, err
	}

	return &domain.EmissionResult{
		ProductID:   product.ProductID,
		ProductName: product.Name,
		Qty:         qty,
		DistanceKm:  distanceKm,
		CO2Kg:       co2,
		Equivalent:  carbon.Equivalent(co2, product.Category),
	}, nil
}
