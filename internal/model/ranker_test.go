package model

import (
	"testing"

	"github.com/greenbasket/sustainability-service/internal/domain"
)

// identical vectors isolate the eco-gain component of the green score.
func flatVectors(n int) [][]float64 {
	vecs := make([][]float64, n)
	for i := range vecs {
		vecs[i] = []float64{1, 0, 0}
	}
	return vecs
}

func TestRankGreenerFirst(t *testing.T) {
	ranker := NewRanker(DefaultSimilarityWeight, DefaultEcoGainWeight, DefaultGreenerMargin)
	base := domain.Product{ProductID: "base", EcoScore: 5}
	candidates := []domain.Product{
		{ProductID: "a", EcoScore: 3},
		{ProductID: "b", EcoScore: 9},
		{ProductID: "c", EcoScore: 7},
	}

	ranked := ranker.Rank(base, []float64{1, 0, 0}, candidates, flatVectors(3), 3)

	if len(ranked) != 3 {
		t.Fatalf("expected 3 results, got %d", len(ranked))
	}

	// Greener candidates lead, best eco gain first
	if ranked[0].Product.ProductID != "b" || !ranked[0].Greener {
		t.Errorf("expected b (greener) first, got %s", ranked[0].Product.ProductID)
	}
	if ranked[1].Product.ProductID != "c" || !ranked[1].Greener {
		t.Errorf("expected c (greener) second, got %s", ranked[1].Product.ProductID)
	}

	// Non-greener candidate is backfill
	if ranked[2].Product.ProductID != "a" || ranked[2].Greener {
		t.Errorf("expected a as backfill last, got %s greener=%v", ranked[2].Product.ProductID, ranked[2].Greener)
	}
}

func TestRankBackfillToLimit(t *testing.T) {
	ranker := NewRanker(DefaultSimilarityWeight, DefaultEcoGainWeight, DefaultGreenerMargin)
	base := domain.Product{ProductID: "base", EcoScore: 8}
	candidates := []domain.Product{
		{ProductID: "a", EcoScore: 9}, // only greener one
		{ProductID: "b", EcoScore: 4},
		{ProductID: "c", EcoScore: 6},
	}

	ranked := ranker.Rank(base, []float64{1, 0, 0}, candidates, flatVectors(3), 3)

	if len(ranked) != 3 {
		t.Fatalf("expected backfill to limit 3, got %d", len(ranked))
	}
	if !ranked[0].Greener {
		t.Error("greener candidate must rank before backfill")
	}
	// Backfill ordered by green score: c (eco 6) over b (eco 4)
	if ranked[1].Product.ProductID != "c" || ranked[2].Product.ProductID != "b" {
		t.Errorf("backfill out of order: %s, %s", ranked[1].Product.ProductID, ranked[2].Product.ProductID)
	}
}

func TestRankExcludesBase(t *testing.T) {
	ranker := NewRanker(DefaultSimilarityWeight, DefaultEcoGainWeight, DefaultGreenerMargin)
	base := domain.Product{ProductID: "base", EcoScore: 5}
	candidates := []domain.Product{
		{ProductID: "base", EcoScore: 5},
		{ProductID: "a", EcoScore: 9},
	}

	ranked := ranker.Rank(base, []float64{1, 0, 0}, candidates, flatVectors(2), 5)

	for _, r := range ranked {
		if r.Product.ProductID == "base" {
			t.Fatal("base product must never be recommended")
		}
	}
	if len(ranked) != 1 {
		t.Errorf("expected 1 result, got %d", len(ranked))
	}
}

func TestRankGreenerMargin(t *testing.T) {
	// Margin 1: eco 5.5 is no longer "greener" than base 5
	ranker := NewRanker(DefaultSimilarityWeight, DefaultEcoGainWeight, 1)
	base := domain.Product{ProductID: "base", EcoScore: 5}
	candidates := []domain.Product{
		{ProductID: "a", EcoScore: 5.5},
		{ProductID: "b", EcoScore: 6.5},
	}

	ranked := ranker.Rank(base, []float64{1, 0, 0}, candidates, flatVectors(2), 2)

	for _, r := range ranked {
		switch r.Product.ProductID {
		case "a":
			if r.Greener {
				t.Error("a should not pass the margin gate")
			}
		case "b":
			if !r.Greener {
				t.Error("b should pass the margin gate")
			}
		}
	}
}

func TestRankDeterministicTieBreak(t *testing.T) {
	ranker := NewRanker(DefaultSimilarityWeight, DefaultEcoGainWeight, DefaultGreenerMargin)
	base := domain.Product{ProductID: "base", EcoScore: 5}
	// Identical eco scores and vectors -> identical green scores
	candidates := []domain.Product{
		{ProductID: "z", EcoScore: 7},
		{ProductID: "a", EcoScore: 7},
		{ProductID: "m", EcoScore: 7},
	}

	ranked := ranker.Rank(base, []float64{1, 0, 0}, candidates, flatVectors(3), 3)

	order := []string{"a", "m", "z"}
	for i, want := range order {
		if ranked[i].Product.ProductID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, ranked[i].Product.ProductID)
		}
	}
}

func TestRankLimitZero(t *testing.T) {
	ranker := NewRanker(DefaultSimilarityWeight, DefaultEcoGainWeight, DefaultGreenerMargin)
	base := domain.Product{ProductID: "base", EcoScore: 5}

	if ranked := ranker.Rank(base, []float64{1}, []domain.Product{{ProductID: "a"}}, [][]float64{{1}}, 0); ranked != nil {
		t.Errorf("expected nil for limit 0, got %v", ranked)
	}
}
