package vector

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch_RequestShapeAndDecode(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/collections/openmemory/points/search", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"result": []map[string]any{
				{"id": "mem-1", "score": 0.91, "payload": map[string]any{"data": "prefers TypeScript", "user_id": "justin"}},
				{"id": "mem-2", "score": 0.42, "payload": map[string]any{"memory": "likes Go"}},
			},
		})
	}))
	defer srv.Close()

	client := New(srv.URL, "openmemory")
	hits, err := client.Search(context.Background(), []float32{0.1, 0.2}, "justin")
	require.NoError(t, err)

	assert.Equal(t, float64(10), captured["limit"])
	assert.Equal(t, true, captured["with_payload"])

	filter := captured["filter"].(map[string]any)
	should := filter["should"].([]any)
	require.Len(t, should, 2)
	keys := []string{
		should[0].(map[string]any)["key"].(string),
		should[1].(map[string]any)["key"].(string),
	}
	assert.ElementsMatch(t, []string{"user_id", "userId"}, keys)
	for _, cond := range should {
		match := cond.(map[string]any)["match"].(map[string]any)
		assert.Equal(t, "justin", match["value"])
	}

	require.Len(t, hits, 2)
	assert.Equal(t, "prefers TypeScript", MemoryText(hits[0].Payload))
	assert.InDelta(t, 0.91, hits[0].Score, 1e-9)
}

func TestSearch_EmptyResultIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"result": []any{}})
	}))
	defer srv.Close()

	hits, err := New(srv.URL, "openmemory").Search(context.Background(), []float32{0.5}, "justin")
	assert.NoError(t, err)
	assert.Empty(t, hits)
}

func TestSearch_StatusErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "collection not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New(srv.URL, "missing").Search(context.Background(), []float32{0.5}, "justin")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestScroll_PageSizeAndDecode(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/collections/openmemory/points/scroll", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		_ = json.NewEncoder(w).Encode(map[string]any{
			"result": map[string]any{
				"points": []map[string]any{
					{"id": "aaaaaaaa-1111", "payload": map[string]any{"data": "fact one", "source_app": "arc"}},
					{"id": float64(7), "payload": map[string]any{"text": "fact two"}},
				},
			},
		})
	}))
	defer srv.Close()

	points, err := New(srv.URL, "openmemory").Scroll(context.Background(), "justin")
	require.NoError(t, err)

	assert.Equal(t, float64(100), captured["limit"])
	assert.Equal(t, false, captured["with_vector"])
	require.Len(t, points, 2)
	assert.Equal(t, "aaaaaaaa-1111", IDString(points[0].ID))
	assert.Equal(t, "7", IDString(points[1].ID))
}

func TestDeleteByID(t *testing.T) {
	var captured map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/collections/openmemory/points/delete", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := New(srv.URL, "openmemory").DeleteByID(context.Background(), "mem-9")
	require.NoError(t, err)
	assert.Equal(t, []any{"mem-9"}, captured["points"])
}
