package model

import (
	"math"
	"sort"
	"strings"

	"github.com/greenbasket/sustainability-service/internal/domain"
)

const defaultMaxVocab = 100

// BuildVectors encodes each product into one fixed-length vector:
// TF-IDF weights over name+category+material text, concatenated with
// eco_score, emission_factor and weight_kg min-max scaled over the
// same population. The vocabulary and scaling bounds are derived from
// this candidate set only, so vectors are comparable within one call
// but not across calls.
func BuildVectors(products []domain.Product, maxVocab int) [][]float64 {
	if maxVocab <= 0 {
		maxVocab = defaultMaxVocab
	}

	docs := make([][]string, len(products))
	for i, p := range products {
		docs[i] = tokenize(p.Name + " " + p.Category + " " + p.Material)
	}

	vocab := buildVocabulary(docs, maxVocab)
	idf := inverseDocFrequencies(docs, vocab)

	numeric := make([][3]float64, len(products))
	for i, p := range products {
		numeric[i] = [3]float64{p.EcoScore, p.EmissionFactor, p.WeightKg}
	}
	scaled := minMaxScale(numeric)

	vectors := make([][]float64, len(products))
	for i := range products {
		text := tfidfVector(docs[i], vocab, idf)
		vec := make([]float64, 0, len(text)+3)
		vec = append(vec, text...)
		vec = append(vec, scaled[i][:]...)
		vectors[i] = vec
	}
	return vectors
}

// tokenize lower-cases, strips punctuation and splits on whitespace.
func tokenize(s string) []string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Fields(b.String())
}

// buildVocabulary keeps the maxVocab most document-frequent terms,
// ties broken alphabetically so vector layout is deterministic.
func buildVocabulary(docs [][]string, maxVocab int) map[string]int {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool, len(doc))
		for _, term := range doc {
			if !seen[term] {
				seen[term] = true
				df[term]++
			}
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if df[terms[i]] != df[terms[j]] {
			return df[terms[i]] > df[terms[j]]
		}
		return terms[i] < terms[j]
	})

	if len(terms) > maxVocab {
		terms = terms[:maxVocab]
	}
	sort.Strings(terms)

	vocab := make(map[string]int, len(terms))
	for i, term := range terms {
		vocab[term] = i
	}
	return vocab
}

// inverseDocFrequencies computes smoothed IDF per vocabulary term.
func inverseDocFrequencies(docs [][]string, vocab map[string]int) []float64 {
	df := make([]int, len(vocab))
	for _, doc := range docs {
		seen := make(map[int]bool, len(doc))
		for _, term := range doc {
			if idx, ok := vocab[term]; ok && !seen[idx] {
				seen[idx] = true
				df[idx]++
			}
		}
	}

	n := float64(len(docs))
	idf := make([]float64, len(vocab))
	for i, d := range df {
		idf[i] = math.Log((1+n)/(1+float64(d))) + 1
	}
	return idf
}

// tfidfVector builds an L2-normalized TF-IDF vector for one document.
func tfidfVector(doc []string, vocab map[string]int, idf []float64) []float64 {
	vec := make([]float64, len(vocab))
	for _, term := range doc {
		if idx, ok := vocab[term]; ok {
			vec[idx]++
		}
	}

	var norm float64
	for i := range vec {
		vec[i] *= idf[i]
		norm += vec[i] * vec[i]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// minMaxScale rescales each column into [0,1] over the population.
// A constant column scales to 0 so a single-product set never divides
// by zero.
func minMaxScale(rows [][3]float64) [][3]float64 {
	out := make([][3]float64, len(rows))
	if len(rows) == 0 {
		return out
	}

	var lo, hi [3]float64
	for c := 0; c < 3; c++ {
		lo[c], hi[c] = rows[0][c], rows[0][c]
	}
	for _, row := range rows {
		for c := 0; c < 3; c++ {
			lo[c] = math.Min(lo[c], row[c])
			hi[c] = math.Max(hi[c], row[c])
		}
	}

	for i, row := range rows {
		for c := 0; c < 3; c++ {
			if span := hi[c] - lo[c]; span > 0 {
				out[i][c] = (row[c] - lo[c]) / span
			}
		}
	}
	return out
}

// CosineSimilarity is the cosine of the angle between two equal-length
// vectors. A zero vector yields 0.
func CosineSimilarity(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
