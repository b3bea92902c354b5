package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/greenbasket/sustainability-service/internal/domain"
	"github.com/greenbasket/sustainability-service/internal/model"
	"github.com/greenbasket/sustainability-service/internal/predictor"
)

type fakeProductStore struct {
	products map[string]domain.Product
}

func (f *fakeProductStore) GetProductByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}

func (f *fakeProductStore) ListProductsByCategory(_ context.Context, category string) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range f.products {
		if strings.EqualFold(p.Category, category) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductStore) ListAllProducts(_ context.Context) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

type fakeOrderStore struct {
	orders     map[string]domain.Order
	footprints map[string]*domain.UserFootprint
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{
		orders:     make(map[string]domain.Order),
		footprints: make(map[string]*domain.UserFootprint),
	}
}

func (f *fakeOrderStore) OrderExists(_ context.Context, orderID string) (bool, error) {
	_, ok := f.orders[orderID]
	return ok, nil
}

func (f *fakeOrderStore) InsertOrder(_ context.Context, order domain.Order) error {
	f.orders[order.OrderID] = order
	return nil
}

func (f *fakeOrderStore) UpsertUserFootprint(_ context.Context, userID string, co2Kg, co2SavedKg float64) error {
	fp, ok := f.footprints[userID]
	if !ok {
		fp = &domain.UserFootprint{UserID: userID}
		f.footprints[userID] = fp
	}
	fp.CO2TotalKg += co2Kg
	fp.CO2SavedKg += co2SavedKg
	fp.EcoPurchaseCount++
	return nil
}

func (f *fakeOrderStore) GetUserFootprint(_ context.Context, userID string) (*domain.UserFootprint, error) {
	fp, ok := f.footprints[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return fp, nil
}

func (f *fakeOrderStore) ListRecentOrders(_ context.Context, userID string, limit int) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range f.orders {
		if o.UserID == userID && len(out) < limit {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderStore) GlobalTotals(_ context.Context) (*domain.GlobalTotals, error) {
	t := &domain.GlobalTotals{Users: len(f.footprints), Orders: len(f.orders)}
	for _, o := range f.orders {
		t.CO2EmittedKg += o.CO2Kg
	}
	for _, fp := range f.footprints {
		t.CO2SavedKg += fp.CO2SavedKg
	}
	return t, nil
}

func (f *fakeOrderStore) EmissionsByDay(_ context.Context, days int) ([]domain.DailyEmission, error) {
	return nil, nil
}

func (f *fakeOrderStore) TopUsersBySavings(_ context.Context, limit int) ([]domain.TopUser, error) {
	return nil, nil
}

func (f *fakeOrderStore) TopProductsByEcoScore(_ context.Context, limit int) ([]domain.TopProduct, error) {
	return nil, nil
}

type stubPredictor struct {
	result predictor.Result
	err    error
}

func (s *stubPredictor) Predict(_ context.Context, _ predictor.Input) (predictor.Result, error) {
	return s.result, s.err
}

type fakeCache struct {
	entries map[string]*domain.RecommendationResult
	getErr  error
	setErr  error
	sets    int
	cleared bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]*domain.RecommendationResult)}
}

func cacheKey(productID string, k int) string {
	return fmt.Sprintf("%s:%d", productID, k)
}

func (f *fakeCache) Get(_ context.Context, productID string, k int) (*domain.RecommendationResult, bool, error) {
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	cached, ok := f.entries[cacheKey(productID, k)]
	if !ok {
		return nil, false, nil
	}
	hit := *cached
	hit.CacheHit = true
	return &hit, true, nil
}

func (f *fakeCache) Set(_ context.Context, productID string, k int, result *domain.RecommendationResult) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.sets++
	f.entries[cacheKey(productID, k)] = result
	return nil
}

func (f *fakeCache) ClearAll(_ context.Context) error {
	f.entries = make(map[string]*domain.RecommendationResult)
	f.cleared = true
	return nil
}

// two-product catalog from the design discussion: a plastic base and a
// strictly greener bamboo substitute in the same category.
func testCatalog() *fakeProductStore {
	return &fakeProductStore{products: map[string]domain.Product{
		"1": {ProductID: "1", Name: "Plastic Bottle", Category: "A", Material: "plastic", WeightKg: 1, EmissionFactor: 5, EcoScore: 3},
		"2": {ProductID: "2", Name: "Bamboo Bottle", Category: "A", Material: "bamboo", WeightKg: 1, EmissionFactor: 1, EcoScore: 9},
	}}
}

func newTestService(products ProductStore, orders OrderStore, pred predictor.Predictor) *Service {
	ranker := model.NewRanker(model.DefaultSimilarityWeight, model.DefaultEcoGainWeight, model.DefaultGreenerMargin)
	return NewService(products, orders, nil, ranker, pred, 100)
}

func newCachedTestService(products ProductStore, c RecommendationCache) *Service {
	ranker := model.NewRanker(model.DefaultSimilarityWeight, model.DefaultEcoGainWeight, model.DefaultGreenerMargin)
	return NewService(products, newFakeOrderStore(), c, ranker, nil, 100)
}

func TestEstimateEmission(t *testing.T) {
	svc := newTestService(testCatalog(), newFakeOrderStore(), nil)

	result, err := svc.EstimateEmission(context.Background(), "1", 1, 100)
	if err != nil {
		t.Fatalf("EstimateEmission failed: %v", err)
	}

	if result.CO2Kg != 5.02 {
		t.Errorf("expected 5.02 kg, got %v", result.CO2Kg)
	}
	if result.ProductName != "Plastic Bottle" {
		t.Errorf("unexpected product name %q", result.ProductName)
	}
}

func TestEstimateEmissionUnknownProduct(t *testing.T) {
	svc := newTestService(testCatalog(), newFakeOrderStore(), nil)

	_, err := svc.EstimateEmission(context.Background(), "missing", 1, 100)
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestEstimateEmissionRejectsNegative(t *testing.T) {
	svc := newTestService(testCatalog(), newFakeOrderStore(), nil)

	_, err := svc.EstimateEmission(context.Background(), "1", -1, 100)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGetRecommendations(t *testing.T) {
	svc := newTestService(testCatalog(), newFakeOrderStore(), nil)

	result, err := svc.GetRecommendations(context.Background(), "1", 1)
	if err != nil {
		t.Fatalf("GetRecommendations failed: %v", err)
	}

	if result.Base.CO2Kg != 5.02 {
		t.Errorf("expected base CO2 5.02, got %v", result.Base.CO2Kg)
	}
	if len(result.Recommendations) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(result.Recommendations))
	}

	rec := result.Recommendations[0]
	if rec.ProductID != "2" {
		t.Errorf("expected product 2 recommended, got %s", rec.ProductID)
	}
	if !rec.Greener {
		t.Error("recommendation should be strictly greener than base")
	}
	// savings(5.02, 1.02) = 4.0
	if rec.CO2SavedKg != 4.0 {
		t.Errorf("expected 4.0 kg saved, got %v", rec.CO2SavedKg)
	}
	if rec.ImpactTag != "green" {
		t.Errorf("eco score 9 should tag green, got %s", rec.ImpactTag)
	}
}

func TestGetRecommendationsUnknownProduct(t *testing.T) {
	svc := newTestService(testCatalog(), newFakeOrderStore(), nil)

	_, err := svc.GetRecommendations(context.Background(), "missing", 5)
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

// A category with no alternatives degrades to an empty list, not an error.
func TestGetRecommendationsEmptyPool(t *testing.T) {
	store := &fakeProductStore{products: map[string]domain.Product{
		"solo": {ProductID: "solo", Name: "Lone Item", Category: "misc", Material: "cotton", WeightKg: 1, EmissionFactor: 2, EcoScore: 6},
	}}
	svc := newTestService(store, newFakeOrderStore(), nil)

	result, err := svc.GetRecommendations(context.Background(), "solo", 5)
	if err != nil {
		t.Fatalf("expected graceful degrade, got %v", err)
	}
	if len(result.Recommendations) != 0 {
		t.Errorf("expected empty recommendations, got %d", len(result.Recommendations))
	}
	if result.Message == "" {
		t.Error("expected a descriptive message for the empty pool")
	}

	// The underlying pool signals the condition with a sentinel.
	solo, _ := store.GetProductByID(context.Background(), "solo")
	if _, err := svc.candidatePool(context.Background(), solo); !errors.Is(err, domain.ErrEmptyCatalog) {
		t.Errorf("expected ErrEmptyCatalog from an exhausted pool, got %v", err)
	}
}

func TestGetRecommendationsCategoryCaseInsensitive(t *testing.T) {
	store := &fakeProductStore{products: map[string]domain.Product{
		"1": {ProductID: "1", Name: "Plastic Bottle", Category: "Kitchen", Material: "plastic", WeightKg: 1, EmissionFactor: 5, EcoScore: 3},
		"2": {ProductID: "2", Name: "Bamboo Bottle", Category: "kitchen", Material: "bamboo", WeightKg: 1, EmissionFactor: 1, EcoScore: 9},
	}}
	svc := newTestService(store, newFakeOrderStore(), nil)

	result, err := svc.GetRecommendations(context.Background(), "1", 5)
	if err != nil {
		t.Fatalf("GetRecommendations failed: %v", err)
	}
	if len(result.Recommendations) != 1 {
		t.Errorf("category match should be case-insensitive, got %d recommendations", len(result.Recommendations))
	}
}

func TestGetRecommendationsCacheMissThenHit(t *testing.T) {
	fc := newFakeCache()
	svc := newCachedTestService(testCatalog(), fc)

	first, err := svc.GetRecommendations(context.Background(), "1", 1)
	if err != nil {
		t.Fatalf("GetRecommendations failed: %v", err)
	}
	if first.CacheHit {
		t.Error("first call should miss the cache")
	}
	if fc.sets != 1 {
		t.Errorf("expected result stored after miss, got %d sets", fc.sets)
	}

	second, err := svc.GetRecommendations(context.Background(), "1", 1)
	if err != nil {
		t.Fatalf("GetRecommendations failed on cached call: %v", err)
	}
	if !second.CacheHit {
		t.Error("second call should hit the cache")
	}
	if fc.sets != 1 {
		t.Errorf("cache hit should not recompute, got %d sets", fc.sets)
	}
	if len(second.Recommendations) != 1 || second.Recommendations[0].ProductID != "2" {
		t.Errorf("cached result should match the computed one, got %+v", second.Recommendations)
	}
}

func TestGetRecommendationsCacheHitShortCircuits(t *testing.T) {
	fc := newFakeCache()
	// Entry for a product the catalog no longer knows: a hit must be
	// returned without touching the store.
	fc.entries[cacheKey("9", 1)] = &domain.RecommendationResult{
		Base: domain.BaseProductSummary{ProductID: "9", Name: "Retired Bottle"},
	}
	svc := newCachedTestService(testCatalog(), fc)

	result, err := svc.GetRecommendations(context.Background(), "9", 1)
	if err != nil {
		t.Fatalf("GetRecommendations failed: %v", err)
	}
	if !result.CacheHit || result.Base.ProductID != "9" {
		t.Errorf("expected cached result for product 9, got %+v", result)
	}
}

func TestGetRecommendationsToleratesCacheErrors(t *testing.T) {
	fc := newFakeCache()
	fc.getErr = errors.New("connection refused")
	fc.setErr = errors.New("connection refused")
	svc := newCachedTestService(testCatalog(), fc)

	result, err := svc.GetRecommendations(context.Background(), "1", 1)
	if err != nil {
		t.Fatalf("cache failure must not fail the request: %v", err)
	}
	if len(result.Recommendations) != 1 || result.Recommendations[0].ProductID != "2" {
		t.Errorf("expected computed recommendations despite cache errors, got %+v", result.Recommendations)
	}
}

func TestInvalidateRecommendations(t *testing.T) {
	fc := newFakeCache()
	svc := newCachedTestService(testCatalog(), fc)

	if _, err := svc.GetRecommendations(context.Background(), "1", 1); err != nil {
		t.Fatalf("GetRecommendations failed: %v", err)
	}
	if len(fc.entries) != 1 {
		t.Fatalf("expected 1 cached entry, got %d", len(fc.entries))
	}

	if err := svc.InvalidateRecommendations(context.Background()); err != nil {
		t.Fatalf("InvalidateRecommendations failed: %v", err)
	}
	if !fc.cleared || len(fc.entries) != 0 {
		t.Error("invalidation should drop every cached entry")
	}

	// Recompute after invalidation.
	if _, err := svc.GetRecommendations(context.Background(), "1", 1); err != nil {
		t.Fatalf("GetRecommendations failed after invalidation: %v", err)
	}
	if fc.sets != 2 {
		t.Errorf("expected recompute after invalidation, got %d sets", fc.sets)
	}
}

func TestInvalidateRecommendationsNilCache(t *testing.T) {
	svc := newTestService(testCatalog(), newFakeOrderStore(), nil)
	if err := svc.InvalidateRecommendations(context.Background()); err != nil {
		t.Errorf("nil cache should be a no-op, got %v", err)
	}
}

func TestOptimizeCart(t *testing.T) {
	svc := newTestService(testCatalog(), newFakeOrderStore(), nil)

	result, err := svc.OptimizeCart(context.Background(), []domain.CartItem{{ProductID: "1", Qty: 2}})
	if err != nil {
		t.Fatalf("OptimizeCart failed: %v", err)
	}

	// current: 2*5 + 0.0002*2*100 = 10.04
	if result.CurrentTotalCO2Kg != 10.04 {
		t.Errorf("expected current total 10.04, got %v", result.CurrentTotalCO2Kg)
	}
	// optimized with product 2 at qty 2: 2*1 + 0.0002*2*100 = 2.04
	if result.OptimizedTotalCO2Kg != 2.04 {
		t.Errorf("expected optimized total 2.04, got %v", result.OptimizedTotalCO2Kg)
	}
	if result.TotalSavedKg != 8.0 {
		t.Errorf("expected 8.0 kg saved, got %v", result.TotalSavedKg)
	}

	if len(result.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(result.Items))
	}
	item := result.Items[0]
	if item.Substitute == nil || item.Substitute.ProductID != "2" {
		t.Fatalf("expected substitute product 2, got %+v", item.Substitute)
	}
}

func TestOptimizeCartSkipsUnknownItems(t *testing.T) {
	svc := newTestService(testCatalog(), newFakeOrderStore(), nil)

	result, err := svc.OptimizeCart(context.Background(), []domain.CartItem{
		{ProductID: "missing", Qty: 1},
		{ProductID: "2", Qty: 1},
	})
	if err != nil {
		t.Fatalf("unknown item must not fail the batch: %v", err)
	}

	if !result.Items[0].Skipped {
		t.Error("unknown item should be marked skipped")
	}
	// Only product 2 counts: 1*1 + 0.0002*1*100 = 1.02
	if result.CurrentTotalCO2Kg != 1.02 {
		t.Errorf("expected current total 1.02, got %v", result.CurrentTotalCO2Kg)
	}
	// Product 2 is the greenest in its category: no substitute
	if result.Items[1].Substitute != nil {
		t.Errorf("greenest product should have no substitute, got %+v", result.Items[1].Substitute)
	}
	if result.TotalSavedKg != 0 {
		t.Errorf("expected 0 saved, got %v", result.TotalSavedKg)
	}
}

func TestOptimizeCartEmpty(t *testing.T) {
	svc := newTestService(testCatalog(), newFakeOrderStore(), nil)

	_, err := svc.OptimizeCart(context.Background(), nil)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for empty cart, got %v", err)
	}
}

func TestGetInsight(t *testing.T) {
	svc := newTestService(testCatalog(), newFakeOrderStore(), nil)

	result, err := svc.GetInsight(context.Background(), "1")
	if err != nil {
		t.Fatalf("GetInsight failed: %v", err)
	}

	if !result.HasComparison {
		t.Fatal("expected a category comparison")
	}
	// avg of (5.02, 1.02) = 3.02; (3.02-5.02)/3.02*100 = -66.2
	if result.DifferencePct != -66.2 {
		t.Errorf("expected -66.2%%, got %v", result.DifferencePct)
	}
	if result.ImpactTag != "red" {
		t.Errorf("eco score 3 should tag red, got %s", result.ImpactTag)
	}
}

// A category of size 1 must produce a defined "no comparison" result.
func TestGetInsightNoPeers(t *testing.T) {
	store := &fakeProductStore{products: map[string]domain.Product{
		"solo": {ProductID: "solo", Name: "Lone Item", Category: "misc", Material: "cotton", WeightKg: 1, EmissionFactor: 2, EcoScore: 6},
	}}
	svc := newTestService(store, newFakeOrderStore(), nil)

	result, err := svc.GetInsight(context.Background(), "solo")
	if err != nil {
		t.Fatalf("GetInsight failed: %v", err)
	}
	if result.HasComparison {
		t.Error("single-product category should have no comparison")
	}
	if result.ImpactMessage == "" {
		t.Error("expected a no-comparison message")
	}
}

func TestRecordOrder(t *testing.T) {
	orders := newFakeOrderStore()
	svc := newTestService(testCatalog(), orders, nil)

	receipt, err := svc.RecordOrder(context.Background(), OrderRequest{
		OrderID:    "ord-1",
		UserID:     "u-1",
		Items:      []domain.CartItem{{ProductID: "2", Qty: 1}},
		DistanceKm: 100,
	})
	if err != nil {
		t.Fatalf("RecordOrder failed: %v", err)
	}

	// bamboo item: 1*1 + 0.02 = 1.02; plastic baseline: 10*1 + 0.02 = 10.02
	if receipt.CO2Kg != 1.02 {
		t.Errorf("expected 1.02 kg, got %v", receipt.CO2Kg)
	}
	if receipt.CO2SavedKg != 9.0 {
		t.Errorf("expected 9.0 kg saved vs conventional baseline, got %v", receipt.CO2SavedKg)
	}

	fp, err := orders.GetUserFootprint(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("footprint not recorded: %v", err)
	}
	if fp.EcoPurchaseCount != 1 || fp.CO2TotalKg != 1.02 {
		t.Errorf("unexpected footprint %+v", fp)
	}
}

func TestRecordOrderIdempotent(t *testing.T) {
	orders := newFakeOrderStore()
	svc := newTestService(testCatalog(), orders, nil)
	req := OrderRequest{
		OrderID: "ord-1",
		UserID:  "u-1",
		Items:   []domain.CartItem{{ProductID: "1", Qty: 1}},
	}

	if _, err := svc.RecordOrder(context.Background(), req); err != nil {
		t.Fatalf("first RecordOrder failed: %v", err)
	}

	receipt, err := svc.RecordOrder(context.Background(), req)
	if err != nil {
		t.Fatalf("second RecordOrder failed: %v", err)
	}
	if !receipt.AlreadyRecorded {
		t.Error("duplicate order should report AlreadyRecorded")
	}

	fp, _ := orders.GetUserFootprint(context.Background(), "u-1")
	if fp.EcoPurchaseCount != 1 {
		t.Errorf("duplicate order must not accumulate totals twice, count=%d", fp.EcoPurchaseCount)
	}
}

func TestRecordOrderGeneratesID(t *testing.T) {
	svc := newTestService(testCatalog(), newFakeOrderStore(), nil)

	receipt, err := svc.RecordOrder(context.Background(), OrderRequest{
		UserID: "u-1",
		Items:  []domain.CartItem{{ProductID: "1", Qty: 1}},
	})
	if err != nil {
		t.Fatalf("RecordOrder failed: %v", err)
	}
	if receipt.OrderID == "" {
		t.Error("expected a generated order ID")
	}
}

func TestRecordOrderValidation(t *testing.T) {
	svc := newTestService(testCatalog(), newFakeOrderStore(), nil)

	_, err := svc.RecordOrder(context.Background(), OrderRequest{UserID: "u-1"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for missing items, got %v", err)
	}

	_, err = svc.RecordOrder(context.Background(), OrderRequest{Items: []domain.CartItem{{ProductID: "1"}}})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for missing user, got %v", err)
	}
}

func TestPredictSustainability(t *testing.T) {
	pred := &stubPredictor{result: predictor.Result{EcoScore: 7.456, EmissionFactor: 2.344}}
	svc := newTestService(testCatalog(), newFakeOrderStore(), pred)

	res, err := svc.PredictSustainability(context.Background(), predictor.Input{
		Category: "kitchen", Material: "bamboo", Weight: 0.4, Price: 12,
	})
	if err != nil {
		t.Fatalf("PredictSustainability failed: %v", err)
	}
	if res.EcoScore != 7.46 || res.EmissionFactor != 2.34 {
		t.Errorf("expected rounded predictions, got %+v", res)
	}
}

func TestPredictSustainabilityValidation(t *testing.T) {
	svc := newTestService(testCatalog(), newFakeOrderStore(), &stubPredictor{})

	_, err := svc.PredictSustainability(context.Background(), predictor.Input{Material: "bamboo", Weight: 1, Price: 1})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestPredictSustainabilityOracleFailure(t *testing.T) {
	pred := &stubPredictor{err: &predictor.PredictionError{Msg: "model offline"}}
	svc := newTestService(testCatalog(), newFakeOrderStore(), pred)

	_, err := svc.PredictSustainability(context.Background(), predictor.Input{
		Category: "kitchen", Material: "bamboo", Weight: 0.4, Price: 12,
	})
	if !predictor.IsPredictionError(err) {
		t.Errorf("expected a prediction error, got %v", err)
	}
}
