package model

import (
	"math"
	"sort"

	"github.com/greenbasket/sustainability-service/internal/domain"
)

const (
	DefaultSimilarityWeight = 0.6
	DefaultEcoGainWeight    = 0.4
	DefaultGreenerMargin    = 0.0

	// ecoScoreScale normalizes the 0-10 eco gain into score range.
	ecoScoreScale = 10.0
)

// Ranker blends similarity with eco improvement into a green score and
// gates recommendations on being strictly greener than the base.
type Ranker struct {
	similarityWeight float64
	ecoGainWeight    float64
	greenerMargin    float64
}

func NewRanker(similarityWeight, ecoGainWeight, greenerMargin float64) *Ranker {
	return &Ranker{
		similarityWeight: similarityWeight,
		ecoGainWeight:    ecoGainWeight,
		greenerMargin:    greenerMargin,
	}
}

type ScoredCandidate struct {
	Product    domain.Product
	Similarity float64
	GreenScore float64
	// Greener marks candidates that passed the strictly-greener gate;
	// false entries are backfill.
	Greener bool
}

// Rank scores every candidate against the base product and returns up
// to limit entries: gated (greener) candidates first by descending
// green score, backfilled with the next-best remaining candidates when
// fewer than limit qualify. The base product itself never appears.
// Ties break on ascending product ID for determinism.
func (r *Ranker) Rank(base domain.Product, baseVec []float64, candidates []domain.Product, vectors [][]float64, limit int) []ScoredCandidate {
	if limit <= 0 {
		return nil
	}

	scored := make([]ScoredCandidate, 0, len(candidates))
	for i, c := range candidates {
		if c.ProductID == base.ProductID {
			continue
		}

		sim := CosineSimilarity(baseVec, vectors[i])
		ecoGain := (c.EcoScore - base.EcoScore) / ecoScoreScale
		score := r.similarityWeight*sim + r.ecoGainWeight*ecoGain

		scored = append(scored, ScoredCandidate{
			Product:    c,
			Similarity: round4(sim),
			GreenScore: round4(score),
			Greener:    c.EcoScore > base.EcoScore+r.greenerMargin,
		})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].GreenScore != scored[j].GreenScore {
			return scored[i].GreenScore > scored[j].GreenScore
		}
		return scored[i].Product.ProductID < scored[j].Product.ProductID
	})

	result := make([]ScoredCandidate, 0, limit)
	for _, s := range scored {
		if s.Greener {
			result = append(result, s)
			if len(result) == limit {
				return result
			}
		}
	}
	for _, s := range scored {
		if !s.Greener {
			result = append(result, s)
			if len(result) == limit {
				break
			}
		}
	}
	return result
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
