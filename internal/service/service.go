// Package service wires chunker, embedder, vector store and summarizer
// into the ingest and query operations the UI consumes.
package service

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"chunkrank/internal/domain"
	"chunkrank/internal/textutil"
)

type Service struct {
	chunker             domain.Chunker
	embedder            domain.Embedder
	store               domain.VectorStore
	summarizer          domain.Summarizer
	minSimilarity       float64
	summaryMaxSentences int
	chunks              []domain.Chunk
}

func New(chunker domain.Chunker, embedder domain.Embedder, store domain.VectorStore, summarizer domain.Summarizer, minSimilarity float64, summaryMaxSentences int) *Service {
	return &Service{
		chunker:             chunker,
		embedder:            embedder,
		store:               store,
		summarizer:          summarizer,
		minSimilarity:       minSimilarity,
		summaryMaxSentences: summaryMaxSentences,
	}
}

// Ingest reads the given .txt/.md files (globs allowed), chunks them,
// prepares the embedder over the chunk corpus, embeds every chunk and
// upserts the pairs into the vector store. It returns a short summary of
// the ingested corpus.
func (s *Service) Ingest(paths []string) (string, error) {
	documents, err := loadDocuments(paths)
	if err != nil {
		return "", err
	}
	if len(documents) == 0 {
		return "", fmt.Errorf("no .txt or .md documents found")
	}

	var allChunks []domain.Chunk
	var chunkTexts []string
	var corpus strings.Builder
	for _, d := range documents {
		chunks, err := s.chunker.Chunk(d)
		if err != nil {
			return "", fmt.Errorf("chunking %s: %w", d.Path, err)
		}
		for _, ch := range chunks {
			allChunks = append(allChunks, ch)
			chunkTexts = append(chunkTexts, ch.Content)
		}
		corpus.WriteString("\n")
		corpus.WriteString(d.Content)
	}
	if len(allChunks) == 0 {
		return "", fmt.Errorf("documents contain no chunkable text")
	}
	// keep chunks for the lexical fallback
	s.chunks = allChunks

	if err := s.embedder.Prepare(chunkTexts); err != nil {
		return "", err
	}

	vectors := make([][]float64, len(allChunks))
	for i := range allChunks {
		vec, err := s.embedder.Embed(allChunks[i].Content)
		if err != nil {
			return "", fmt.Errorf("embedding %s: %w", allChunks[i].ID, err)
		}
		vectors[i] = vec
	}

	// remote embedders learn their dimension from the first embed call,
	// so Init comes after embedding
	if err := s.store.Init(s.embedder.Dimension()); err != nil {
		return "", err
	}
	if err := s.store.Upsert(allChunks, vectors); err != nil {
		return "", err
	}

	return s.summarizer.Summarize(corpus.String(), s.summaryMaxSentences)
}

// Query embeds the query and searches the vector store. A query that
// embeds to the zero vector (out-of-vocabulary for TF-IDF) falls back to
// lexical token-overlap scoring over the ingested chunks.
func (s *Service) Query(query string, topK int) ([]domain.SearchResult, error) {
	vec, err := s.embedder.Embed(query)
	if err != nil {
		return nil, err
	}
	if isZero(vec) {
		return s.lexicalSearch(query, topK), nil
	}
	return s.store.Search(vec, topK, s.minSimilarity)
}

func isZero(vec []float64) bool {
	for _, v := range vec {
		if v != 0 {
			return false
		}
	}
	return true
}

// lexicalSearch ranks chunks by the Ochiai coefficient between the query's
// token set and each chunk's: |A∩B| / sqrt(|A||B|).
func (s *Service) lexicalSearch(query string, topK int) []domain.SearchResult {
	qset := textutil.TokenSet(query)
	results := make([]domain.SearchResult, 0, len(s.chunks))
	for _, ch := range s.chunks {
		score := ochiai(qset, textutil.TokenSet(ch.Content))
		if score < s.minSimilarity {
			continue
		}
		results = append(results, domain.SearchResult{Chunk: ch, Score: score})
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	if topK <= 0 {
		topK = 3
	}
	if topK < len(results) {
		results = results[:topK]
	}
	return results
}

func ochiai(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for t := range a {
		if _, ok := b[t]; ok {
			inter++
		}
	}
	return float64(inter) / (math.Sqrt(float64(len(a))) * math.Sqrt(float64(len(b))))
}

func loadDocuments(paths []string) ([]domain.Document, error) {
	var documents []domain.Document
	for _, p := range paths {
		matches, _ := filepath.Glob(p)
		if matches == nil {
			matches = []string{p}
		}
		for _, m := range matches {
			switch strings.ToLower(filepath.Ext(m)) {
			case ".txt", ".md":
			default:
				continue
			}
			data, err := os.ReadFile(m)
			if err != nil {
				return nil, err
			}
			documents = append(documents, domain.Document{
				ID:      hashString(m),
				Path:    m,
				Source:  filepath.Base(m),
				Content: string(data),
			})
		}
	}
	return documents, nil
}

func hashString(s string) string {
	h := sha1.Sum([]byte(s))
	return hex.EncodeToString(h[:8])
}
