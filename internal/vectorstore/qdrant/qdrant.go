// Package qdrant is a minimal REST client to a Qdrant collection with
// cosine distance. The collection is created on Init if missing.
package qdrant

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"chunkrank/internal/domain"
)

type Storage struct {
	url        string
	apiKey     string
	collection string
	dimension  int
	client     *http.Client
}

type Config struct {
	URL        string
	APIKey     string
	Collection string
	Timeout    time.Duration
}

func NewStorage(cfg Config) *Storage {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Storage{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		collection: cfg.Collection,
		client:     &http.Client{Timeout: timeout},
	}
}

func (s *Storage) Init(dimension int) error {
	if dimension <= 0 {
		return errors.New("invalid dimension")
	}
	s.dimension = dimension
	body := map[string]any{
		"vectors": map[string]any{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	// Qdrant returns 200 OK if the collection already exists with the
	// same schema; anything else propagates.
	return s.putJSON(fmt.Sprintf("%s/collections/%s", s.url, s.collection), body)
}

func (s *Storage) Upsert(chunks []domain.Chunk, vectors [][]float64) error {
	if len(chunks) != len(vectors) {
		return errors.New("chunks and vectors length mismatch")
	}
	points := make([]map[string]any, len(chunks))
	for i, ch := range chunks {
		payload := map[string]any{
			"chunk_id":     ch.ID,
			"source":       ch.Source,
			"index":        ch.Index,
			"total_chunks": ch.TotalChunks,
			"start_char":   ch.StartChar,
			"end_char":     ch.EndChar,
			"content":      ch.Content,
		}
		for k, v := range ch.Metadata {
			payload["meta_"+k] = v
		}
		points[i] = map[string]any{
			"id":      ch.ID,
			"vector":  vectors[i],
			"payload": payload,
		}
	}
	body := map[string]any{"points": points}
	return s.putJSON(fmt.Sprintf("%s/collections/%s/points?wait=true", s.url, s.collection), body)
}

func (s *Storage) Search(vector []float64, topK int, minSimilarity float64) ([]domain.SearchResult, error) {
	if topK <= 0 {
		topK = 3
	}
	req := map[string]any{
		"vector":          vector,
		"limit":           topK,
		"score_threshold": minSimilarity,
		"with_payload":    true,
	}
	var resp struct {
		Result []struct {
			Score   float64        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	if err := s.postJSON(fmt.Sprintf("%s/collections/%s/points/search", s.url, s.collection), req, &resp); err != nil {
		return nil, err
	}
	results := make([]domain.SearchResult, 0, len(resp.Result))
	for _, r := range resp.Result {
		results = append(results, domain.SearchResult{Chunk: chunkFromPayload(r.Payload), Score: r.Score})
	}
	return results, nil
}

func (s *Storage) Clear() error {
	// Best-effort: drop collection
	req, _ := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/collections/%s", s.url, s.collection), nil)
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
	_, _ = s.client.Do(req)
	return nil
}

func chunkFromPayload(payload map[string]any) domain.Chunk {
	chunk := domain.Chunk{}
	if v, ok := payload["chunk_id"].(string); ok {
		chunk.ID = v
	}
	if v, ok := payload["source"].(string); ok {
		chunk.Source = v
	}
	if v, ok := payload["content"].(string); ok {
		chunk.Content = v
	}
	if v, ok := payload["index"].(float64); ok {
		chunk.Index = int(v)
	}
	if v, ok := payload["total_chunks"].(float64); ok {
		chunk.TotalChunks = int(v)
	}
	if v, ok := payload["start_char"].(float64); ok {
		chunk.StartChar = int(v)
	}
	if v, ok := payload["end_char"].(float64); ok {
		chunk.EndChar = int(v)
	}
	for k, v := range payload {
		name, found := strings.CutPrefix(k, "meta_")
		if !found {
			continue
		}
		if sv, ok := v.(string); ok {
			if chunk.Metadata == nil {
				chunk.Metadata = make(map[string]string)
			}
			chunk.Metadata[name] = sv
		}
	}
	return chunk
}

func (s *Storage) putJSON(url string, body any) error {
	data, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPut, url, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant PUT %s failed: %s", url, resp.Status)
	}
	return nil
}

func (s *Storage) postJSON(url string, body any, out any) error {
	data, _ := json.Marshal(body)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant POST %s failed: %s", url, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
