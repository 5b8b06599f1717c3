// Package chromem backs the vector store with an embedded chromem-go
// collection. Vectors are supplied pre-computed, so the collection's
// embedding func is never invoked.
package chromem

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	chromemgo "github.com/philippgille/chromem-go"

	"chunkrank/internal/domain"
)

const collectionName = "chunks"

type Storage struct {
	db         *chromemgo.DB
	collection *chromemgo.Collection
	dimension  int
}

func NewStorage() *Storage {
	return &Storage{db: chromemgo.NewDB()}
}

// precomputedOnly guards against accidental text-based queries; every
// vector in this store is produced by the pipeline's own embedder.
func precomputedOnly(_ context.Context, _ string) ([]float32, error) {
	return nil, errors.New("store holds precomputed embeddings only")
}

func (s *Storage) Init(dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	s.dimension = dimension
	_ = s.db.DeleteCollection(collectionName)
	coll, err := s.db.CreateCollection(collectionName, nil, precomputedOnly)
	if err != nil {
		return fmt.Errorf("create collection: %w", err)
	}
	s.collection = coll
	return nil
}

func (s *Storage) Upsert(chunks []domain.Chunk, vectors [][]float64) error {
	if s.collection == nil {
		return errors.New("store not initialized")
	}
	if len(chunks) != len(vectors) {
		return errors.New("chunks and vectors length mismatch")
	}
	docs := make([]chromemgo.Document, len(chunks))
	for i, ch := range chunks {
		if len(vectors[i]) != s.dimension {
			return fmt.Errorf("vector for %s: dimension mismatch: %d vs %d", ch.ID, len(vectors[i]), s.dimension)
		}
		meta := map[string]string{
			"source":       ch.Source,
			"index":        strconv.Itoa(ch.Index),
			"total_chunks": strconv.Itoa(ch.TotalChunks),
			"start_char":   strconv.Itoa(ch.StartChar),
			"end_char":     strconv.Itoa(ch.EndChar),
		}
		for k, v := range ch.Metadata {
			meta["meta_"+k] = v
		}
		docs[i] = chromemgo.Document{
			ID:        ch.ID,
			Content:   ch.Content,
			Embedding: toFloat32(vectors[i]),
			Metadata:  meta,
		}
	}
	return s.collection.AddDocuments(context.Background(), docs, 1)
}

func (s *Storage) Search(vector []float64, topK int, minSimilarity float64) ([]domain.SearchResult, error) {
	if s.collection == nil {
		return nil, errors.New("store not initialized")
	}
	if topK <= 0 {
		topK = 3
	}
	// chromem rejects nResults beyond the collection size.
	if count := s.collection.Count(); topK > count {
		topK = count
	}
	if topK == 0 {
		return nil, nil
	}
	found, err := s.collection.QueryEmbedding(context.Background(), toFloat32(vector), topK, nil, nil)
	if err != nil {
		return nil, err
	}
	results := make([]domain.SearchResult, 0, len(found))
	for _, r := range found {
		score := float64(r.Similarity)
		if score < minSimilarity {
			continue
		}
		results = append(results, domain.SearchResult{Chunk: chunkFromResult(r), Score: score})
	}
	return results, nil
}

func (s *Storage) Clear() error {
	s.collection = nil
	return s.db.DeleteCollection(collectionName)
}

func chunkFromResult(r chromemgo.Result) domain.Chunk {
	chunk := domain.Chunk{ID: r.ID, Content: r.Content}
	for k, v := range r.Metadata {
		switch k {
		case "source":
			chunk.Source = v
		case "index":
			chunk.Index, _ = strconv.Atoi(v)
		case "total_chunks":
			chunk.TotalChunks, _ = strconv.Atoi(v)
		case "start_char":
			chunk.StartChar, _ = strconv.Atoi(v)
		case "end_char":
			chunk.EndChar, _ = strconv.Atoi(v)
		default:
			if len(k) > 5 && k[:5] == "meta_" {
				if chunk.Metadata == nil {
					chunk.Metadata = make(map[string]string)
				}
				chunk.Metadata[k[5:]] = v
			}
		}
	}
	return chunk
}

func toFloat32(v []float64) []float32 {
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(x)
	}
	return out
}
