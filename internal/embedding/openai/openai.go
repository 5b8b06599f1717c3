// Package openai is an OpenAI-compatible embeddings client. It also
// understands the Ollama-native response shape, so any /v1/embeddings
// endpoint works.
package openai

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"
)

type Client struct {
	baseURL    string
	apiKey     string
	model      string
	dimension  int
	client     *http.Client
	maxRetries int
}

// Config configures the embeddings client. The API key is read from the
// environment variable named by APIKeyEnv, never stored in config files.
type Config struct {
	BaseURL   string
	APIKeyEnv string
	Model     string
	Timeout   time.Duration
}

func NewClient(cfg Config) (*Client, error) {
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "text-embedding-3-small"
	}
	t := cfg.Timeout
	if t == 0 {
		t = 30 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     key,
		model:      cfg.Model,
		client:     &http.Client{Timeout: t},
		maxRetries: 5,
	}, nil
}

func (c *Client) Name() string { return "openai" }

// Prepare is a no-op for remote embedding; dimension is learned lazily
// from the first response.
func (c *Client) Prepare(corpus []string) error { return nil }

func (c *Client) Dimension() int { return c.dimension }

// Embed returns an embedding vector for the given text, retrying
// rate limits and server errors with exponential backoff.
func (c *Client) Embed(text string) ([]float64, error) {
	type reqBody struct {
		Input string `json:"input"`
		Model string `json:"model"`
	}
	url := fmt.Sprintf("%s/embeddings", c.baseURL)
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		data, _ := json.Marshal(reqBody{Input: text, Model: c.model})
		req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.client.Do(req)
		if err != nil {
			if attempt < c.maxRetries {
				time.Sleep(retryDelay(attempt))
				continue
			}
			return nil, err
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			delay := retryDelay(attempt)
			if ra := resp.Header.Get("Retry-After"); ra != "" {
				if secs, err := strconv.Atoi(ra); err == nil {
					delay = time.Duration(secs) * time.Second
				}
			}
			_ = resp.Body.Close()
			if attempt < c.maxRetries {
				time.Sleep(delay)
				continue
			}
			return nil, fmt.Errorf("embeddings request failed: %s", resp.Status)
		}

		if resp.StatusCode >= 300 {
			_ = resp.Body.Close()
			return nil, fmt.Errorf("embeddings request failed: %s", resp.Status)
		}

		payload, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			if attempt < c.maxRetries {
				time.Sleep(retryDelay(attempt))
				continue
			}
			return nil, err
		}
		if vec := decodeEmbedding(payload); len(vec) > 0 {
			if c.dimension == 0 {
				c.dimension = len(vec)
			}
			return vec, nil
		}
		if attempt < c.maxRetries {
			time.Sleep(retryDelay(attempt))
			continue
		}
	}
	return nil, errors.New("no embedding returned")
}

// decodeEmbedding accepts both the OpenAI shape {"data":[{"embedding":[...]}]}
// and the Ollama-native shape {"embedding":[...]}.
func decodeEmbedding(payload []byte) []float64 {
	var openaiOut struct {
		Data []struct {
			Embedding []float64 `json:"embedding"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &openaiOut); err == nil && len(openaiOut.Data) > 0 {
		return openaiOut.Data[0].Embedding
	}
	var ollamaOut struct {
		Embedding []float64 `json:"embedding"`
	}
	if err := json.Unmarshal(payload, &ollamaOut); err == nil {
		return ollamaOut.Embedding
	}
	return nil
}

func retryDelay(attempt int) time.Duration {
	base := 200 * time.Millisecond
	d := base << attempt
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	return d
}
