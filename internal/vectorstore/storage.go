// Package vectorstore defines the storage contract for (chunk, vector)
// pairs and hosts its backends.
package vectorstore

import "chunkrank/internal/domain"

// Storage persists vectors and supports similarity search.
type Storage interface {
	Init(dimension int) error
	Upsert(chunks []domain.Chunk, vectors [][]float64) error
	Search(vector []float64, topK int, minSimilarity float64) ([]domain.SearchResult, error)
	Clear() error
}
