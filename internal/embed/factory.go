package embed

import (
	"strings"

	"github.com/agenthands/recall/internal/config"
)

// New selects the embedding provider. The "openai" provider is only active
// when a base URL is configured; everything else goes to the local Ollama
// server. Query vectors must come from the same provider and model that wrote
// the index; no mismatch detection is attempted here.
func New(cfg config.EmbeddingConfig) (Embedder, error) {
	if strings.ToLower(cfg.Provider) == "openai" && cfg.BaseURL != "" {
		return NewOpenAIEmbedder(cfg.APIKey, cfg.Model, cfg.BaseURL), nil
	}
	return NewOllamaEmbedder(cfg.OllamaURL, cfg.Model)
}
