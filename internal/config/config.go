package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

type APIConfig struct {
	BaseURL string `toml:"base_url"`
}

type QdrantConfig struct {
	BaseURL    string `toml:"base_url"`
	Collection string `toml:"collection"`
}

type EmbeddingConfig struct {
	Provider  string `toml:"provider"`
	Model     string `toml:"model"`
	APIKey    string `toml:"api_key"`
	BaseURL   string `toml:"base_url"`
	OllamaURL string `toml:"ollama_url"`
}

type Neo4jConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type ServerConfig struct {
	Transport string `toml:"transport"`
	Addr      string `toml:"addr"`
}

type Config struct {
	API       APIConfig       `toml:"api"`
	Qdrant    QdrantConfig    `toml:"qdrant"`
	Embedding EmbeddingConfig `toml:"embedding"`
	Neo4j     Neo4jConfig     `toml:"neo4j"`
	Server    ServerConfig    `toml:"server"`
	UserID    string          `toml:"user_id"`
}

func defaults() *Config {
	return &Config{
		API:    APIConfig{BaseURL: "http://127.0.0.1:8765"},
		Qdrant: QdrantConfig{BaseURL: "http://127.0.0.1:6333", Collection: "openmemory"},
		Embedding: EmbeddingConfig{
			Provider:  "ollama",
			Model:     "nomic-embed-text:latest",
			OllamaURL: "http://127.0.0.1:11435",
		},
		Neo4j:  Neo4jConfig{URI: "bolt://127.0.0.1:7687", User: "neo4j", Password: "mem0graph"},
		Server: ServerConfig{Transport: "stdio", Addr: ":8080"},
		UserID: "justin",
	}
}

// Load reads the TOML config at path and applies RECALL_* environment
// overrides on top. A missing file is not an error; the defaults plus the
// environment are enough to run.
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML config '%s': %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	setIfPresent(&c.API.BaseURL, "RECALL_API_BASE")
	setIfPresent(&c.Qdrant.BaseURL, "RECALL_QDRANT_URL")
	setIfPresent(&c.Qdrant.Collection, "RECALL_COLLECTION")
	setIfPresent(&c.Embedding.Provider, "RECALL_EMBED_PROVIDER")
	setIfPresent(&c.Embedding.Model, "RECALL_EMBED_MODEL")
	setIfPresent(&c.Embedding.APIKey, "RECALL_EMBED_API_KEY")
	setIfPresent(&c.Embedding.BaseURL, "RECALL_EMBED_BASE_URL")
	setIfPresent(&c.Embedding.OllamaURL, "RECALL_OLLAMA_URL")
	setIfPresent(&c.Neo4j.URI, "RECALL_NEO4J_URL")
	setIfPresent(&c.Neo4j.User, "RECALL_NEO4J_USER")
	setIfPresent(&c.Neo4j.Password, "RECALL_NEO4J_PASSWORD")
	setIfPresent(&c.Server.Transport, "RECALL_TRANSPORT")
	setIfPresent(&c.Server.Addr, "RECALL_HTTP_ADDR")
	setIfPresent(&c.UserID, "RECALL_USER_ID")
}

func setIfPresent(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
