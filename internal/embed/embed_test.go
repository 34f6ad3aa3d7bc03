package embed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/recall/internal/config"
)

func TestNew_ProviderSelection(t *testing.T) {
	e, err := New(config.EmbeddingConfig{
		Provider: "openai",
		Model:    "text-embedding-3-small",
		APIKey:   "sk-test",
		BaseURL:  "https://llm.example.com/v1",
	})
	require.NoError(t, err)
	assert.IsType(t, &OpenAIEmbedder{}, e)

	// openai without a base URL falls back to the local server.
	e, err = New(config.EmbeddingConfig{
		Provider:  "openai",
		Model:     "nomic-embed-text:latest",
		OllamaURL: "http://127.0.0.1:11435",
	})
	require.NoError(t, err)
	assert.IsType(t, &OllamaEmbedder{}, e)

	e, err = New(config.EmbeddingConfig{
		Provider:  "ollama",
		Model:     "nomic-embed-text:latest",
		OllamaURL: "http://127.0.0.1:11435",
	})
	require.NoError(t, err)
	assert.IsType(t, &OllamaEmbedder{}, e)
}

func TestOllamaEmbedder_Embed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/embed", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "nomic-embed-text:latest", body["model"])
		assert.Equal(t, "hello", body["input"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"model":      "nomic-embed-text:latest",
			"embeddings": [][]float32{{0.1, 0.2, 0.3}},
		})
	}))
	defer srv.Close()

	e, err := NewOllamaEmbedder(srv.URL, "nomic-embed-text:latest")
	require.NoError(t, err)

	vec, err := e.Embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
}

func TestOllamaEmbedder_EmptyEmbeddingsIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"embeddings": [][]float32{}})
	}))
	defer srv.Close()

	e, err := NewOllamaEmbedder(srv.URL, "nomic-embed-text:latest")
	require.NoError(t, err)

	_, err = e.Embed(context.Background(), "hello")
	assert.Error(t, err)
}

func TestOpenAIEmbedder_Embed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"object": "list",
			"data": []map[string]any{
				{"object": "embedding", "index": 0, "embedding": []float32{0.4, 0.5}},
			},
			"model": "text-embedding-3-small",
		})
	}))
	defer srv.Close()

	e := NewOpenAIEmbedder("sk-test", "text-embedding-3-small", srv.URL)
	vec, err := e.Embed(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.4, 0.5}, vec)
}

func TestOpenAIEmbedder_StatusErrorIsHardFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"bad key","type":"auth"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	e := NewOpenAIEmbedder("sk-bad", "text-embedding-3-small", srv.URL)
	_, err := e.Embed(context.Background(), "hello")
	assert.Error(t, err)
}
