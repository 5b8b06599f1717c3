// Package config loads the application configuration from YAML, applies
// defaults and lets individual knobs be overridden from the environment.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v10"
	"gopkg.in/yaml.v3"
)

// OpenAIEmbedderConfig holds configuration for the OpenAI-compatible embedder.
type OpenAIEmbedderConfig struct {
	BaseURL     string `yaml:"base_url" env:"EMBEDDER_BASE_URL"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model" env:"EMBEDDER_MODEL"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// EmbedderConfig selects and configures the text embedder implementation.
type EmbedderConfig struct {
	Type   string                `yaml:"type" env:"EMBEDDER_TYPE"`
	OpenAI *OpenAIEmbedderConfig `yaml:"openai,omitempty"`
}

// ChunkerConfig configures how documents are split into chunks.
// Sizes are in characters.
type ChunkerConfig struct {
	Type      string `yaml:"type"`
	ChunkSize int    `yaml:"chunk_size" env:"CHUNK_SIZE"`
	Overlap   int    `yaml:"overlap" env:"CHUNK_OVERLAP"`
}

// RankerConfig holds the similarity search policy knobs.
type RankerConfig struct {
	MinSimilarity float64 `yaml:"min_similarity" env:"MIN_SIMILARITY"`
	TopK          int     `yaml:"top_k" env:"TOP_K"`
}

// VectorStoreConfig selects and configures the vector store implementation.
type VectorStoreConfig struct {
	Type   string        `yaml:"type" env:"VECTOR_STORE"`
	Qdrant *QdrantConfig `yaml:"qdrant,omitempty"`
}

// QdrantConfig contains connection details for a Qdrant vector store.
type QdrantConfig struct {
	URL         string `yaml:"url" env:"QDRANT_URL"`
	APIKey      string `yaml:"api_key" env:"QDRANT_API_KEY"`
	Collection  string `yaml:"collection"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// SummarizerConfig selects and configures the summarizer.
type SummarizerConfig struct {
	Type         string `yaml:"type"`
	MaxSentences int    `yaml:"max_sentences"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Embedder    EmbedderConfig    `yaml:"embedder"`
	Chunker     ChunkerConfig     `yaml:"chunker"`
	Ranker      RankerConfig      `yaml:"ranker"`
	VectorStore VectorStoreConfig `yaml:"vector_store"`
	Summarizer  SummarizerConfig  `yaml:"summarizer"`
}

// Load reads a config from a specified path. If the file does not exist,
// defaults are returned. Environment variables override file values.
func Load(path string) (*AppConfig, error) {
	var cfg *AppConfig
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		cfg = &AppConfig{}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	case errors.Is(err, os.ErrNotExist):
		cfg = defaultConfig()
	default:
		return nil, err
	}
	applyDefaults(cfg)
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/chunkrank/config.yaml.
// If neither exists, it writes defaults to the user path and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "chunkrank", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Embedder:    EmbedderConfig{Type: "tfidf"},
		Chunker:     ChunkerConfig{Type: "sentence", ChunkSize: 500, Overlap: 50},
		Ranker:      RankerConfig{MinSimilarity: 0.7, TopK: 3},
		VectorStore: VectorStoreConfig{Type: "memory"},
		Summarizer:  SummarizerConfig{Type: "frequency", MaxSentences: 5},
	}
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Chunker.ChunkSize == 0 {
		cfg.Chunker.ChunkSize = 500
	}
	if cfg.Chunker.Overlap == 0 {
		cfg.Chunker.Overlap = 50
	}
	if cfg.Ranker.MinSimilarity == 0 {
		cfg.Ranker.MinSimilarity = 0.7
	}
	if cfg.Ranker.TopK == 0 {
		cfg.Ranker.TopK = 3
	}
	if cfg.Summarizer.MaxSentences == 0 {
		cfg.Summarizer.MaxSentences = 5
	}
	if cfg.Embedder.Type == "openai" && cfg.Embedder.OpenAI != nil {
		o := cfg.Embedder.OpenAI
		if o.BaseURL == "" {
			o.BaseURL = "https://api.openai.com/v1"
		}
		if o.APIKeyEnv == "" {
			o.APIKeyEnv = "OPENAI_API_KEY"
		}
		if o.Model == "" {
			o.Model = "text-embedding-3-small"
		}
		if o.TimeoutSecs == 0 {
			o.TimeoutSecs = 30
		}
	}
}

// applyEnvOverrides lets single knobs be flipped without editing the file;
// only variables that are actually set take effect. env.Parse recurses
// into the nested sections on its own.
func applyEnvOverrides(cfg *AppConfig) error {
	return env.Parse(cfg)
}
