// Package memory is an in-memory vector store using brute-force exact
// cosine ranking, appropriate for corpora up to a few thousand vectors.
package memory

import (
	"errors"
	"fmt"
	"sync"

	"chunkrank/internal/domain"
	"chunkrank/internal/ranker"
)

// Storage holds chunks and their vectors in parallel slices guarded by a
// read-write lock, so concurrent searches never block each other.
type Storage struct {
	mu        sync.RWMutex
	dimension int
	vectors   [][]float64
	chunks    []domain.Chunk
}

func NewStorage() *Storage { return &Storage{} }

func (s *Storage) Init(dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimension = dimension
	s.vectors = nil
	s.chunks = nil
	return nil
}

func (s *Storage) Upsert(chunks []domain.Chunk, vectors [][]float64) error {
	if len(chunks) != len(vectors) {
		return errors.New("chunks and vectors length mismatch")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, v := range vectors {
		if len(v) != s.dimension {
			return fmt.Errorf("vector for %s: %w: %d vs %d", chunks[i].ID, ranker.ErrDimensionMismatch, len(v), s.dimension)
		}
	}
	s.chunks = append(s.chunks, chunks...)
	s.vectors = append(s.vectors, vectors...)
	return nil
}

func (s *Storage) Search(vector []float64, topK int, minSimilarity float64) ([]domain.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ranker.Rank(vector, s.chunks, s.vectors, minSimilarity, topK)
}

func (s *Storage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vectors = nil
	s.chunks = nil
	return nil
}
