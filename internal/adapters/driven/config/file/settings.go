package file

import (
	"os"

	"github.com/quantia-labs/docqa-cli/internal/core/ports/driven"
)

// Configuration keys used across the CLI.
const (
	KeyAPIKey         = "ai.api_key"
	KeyBaseURL        = "ai.base_url"
	KeyEmbeddingModel = "ai.embedding_model"
	KeyLLMModel       = "ai.llm_model"
	KeyProfile        = "ingest.profile"
	KeyChunkSize      = "ingest.chunk_size"
	KeyChunkOverlap   = "ingest.chunk_overlap"
	KeyCacheDir       = "cache.dir"
)

// Settings is a typed view over the config store for the values the
// CLI wires into services.
type Settings struct {
	APIKey         string
	BaseURL        string
	EmbeddingModel string
	LLMModel       string
	Profile        string
	ChunkSize      int
	ChunkOverlap   int
	CacheDir       string
}

// ReadSettings assembles Settings from the store. The OPENAI_API_KEY
// environment variable overrides the stored key so .env files work
// without touching config.toml.
func ReadSettings(store driven.ConfigStore) Settings {
	s := Settings{
		APIKey:         store.GetString(KeyAPIKey),
		BaseURL:        store.GetString(KeyBaseURL),
		EmbeddingModel: store.GetString(KeyEmbeddingModel),
		LLMModel:       store.GetString(KeyLLMModel),
		Profile:        store.GetString(KeyProfile),
		ChunkSize:      store.GetInt(KeyChunkSize),
		ChunkOverlap:   store.GetInt(KeyChunkOverlap),
		CacheDir:       store.GetString(KeyCacheDir),
	}

	if env := os.Getenv("OPENAI_API_KEY"); env != "" {
		s.APIKey = env
	}
	return s
}
