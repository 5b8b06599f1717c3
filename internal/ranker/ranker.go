// Package ranker scores pre-computed embedding vectors against a query
// vector by cosine similarity and returns the top-K items above a
// relevance threshold.
package ranker

import (
	"fmt"
	"math"
	"sort"

	"chunkrank/internal/domain"
)

// Default ranking policy knobs, overridable per call.
const (
	DefaultMinSimilarity = 0.7
	DefaultTopK          = 3
)

// ErrDimensionMismatch reports two vectors of differing length. It always
// indicates a data-integrity bug upstream, so it fails the whole ranking
// call rather than skipping the offending item.
var ErrDimensionMismatch = fmt.Errorf("vector dimension mismatch")

// DotProduct returns the pairwise-multiply-and-sum of a and b. Vectors of
// differing length are rejected, never truncated or zero-padded.
func DotProduct(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum, nil
}

// Magnitude returns the Euclidean norm of v.
func Magnitude(v []float64) float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// CosineSimilarity returns the normalized dot product of a and b, in
// [-1, 1]. A zero vector is maximally dissimilar to everything, including
// another zero vector: the result is exactly 0, never NaN, so downstream
// sorting and filtering stay well defined.
func CosineSimilarity(a, b []float64) (float64, error) {
	dot, err := DotProduct(a, b)
	if err != nil {
		return 0, err
	}
	ma, mb := Magnitude(a), Magnitude(b)
	if ma == 0 || mb == 0 {
		return 0, nil
	}
	return dot / (ma * mb), nil
}

// Rank scores every chunk's vector against query, drops scores strictly
// below minSimilarity, sorts the rest descending and truncates to topK.
// Filtering happens before truncation so the returned set is the topK
// highest-scoring items above threshold, not an arbitrary subset. Equal
// scores keep their input order. A non-positive topK selects DefaultTopK.
// No candidate passing the threshold is not an error: the result is empty.
func Rank(query []float64, chunks []domain.Chunk, vectors [][]float64, minSimilarity float64, topK int) ([]domain.SearchResult, error) {
	if len(chunks) != len(vectors) {
		return nil, fmt.Errorf("chunks and vectors length mismatch: %d vs %d", len(chunks), len(vectors))
	}
	if topK <= 0 {
		topK = DefaultTopK
	}
	results := make([]domain.SearchResult, 0, len(chunks))
	for i := range chunks {
		score, err := CosineSimilarity(query, vectors[i])
		if err != nil {
			return nil, fmt.Errorf("ranking %s: %w", chunks[i].ID, err)
		}
		if score < minSimilarity {
			continue
		}
		results = append(results, domain.SearchResult{Chunk: chunks[i], Score: score})
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if topK < len(results) {
		results = results[:topK]
	}
	return results, nil
}
