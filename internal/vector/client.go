package vector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	searchLimit    = 10
	scrollPageSize = 100
)

// Client talks to the Qdrant HTTP API directly, bypassing the write API.
// Reads here see every memory in the collection regardless of which writer
// created it.
type Client struct {
	baseURL    string
	collection string
	httpClient *http.Client
}

func New(baseURL, collection string) *Client {
	return &Client{
		baseURL:    baseURL,
		collection: collection,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type fieldMatch struct {
	Key   string     `json:"key"`
	Match matchValue `json:"match"`
}

type matchValue struct {
	Value string `json:"value"`
}

type pointsFilter struct {
	Should []fieldMatch `json:"should"`
}

// userFilter matches points owned by userID under either of the two payload
// schemas seen in the wild ("user_id" and "userId").
func userFilter(userID string) pointsFilter {
	return pointsFilter{
		Should: []fieldMatch{
			{Key: "user_id", Match: matchValue{Value: userID}},
			{Key: "userId", Match: matchValue{Value: userID}},
		},
	}
}

type searchRequest struct {
	Vector      []float32    `json:"vector"`
	Limit       int          `json:"limit"`
	WithPayload bool         `json:"with_payload"`
	Filter      pointsFilter `json:"filter"`
}

// SearchHit is one scored point. IDs are decoded loosely because Qdrant
// allows both integer and UUID point ids.
type SearchHit struct {
	ID      any            `json:"id"`
	Score   float64        `json:"score"`
	Payload map[string]any `json:"payload"`
}

type searchResponse struct {
	Result []SearchHit `json:"result"`
}

// Search runs a similarity search scoped to userID, limited to 10 hits,
// ordered by the store's native ranking.
func (c *Client) Search(ctx context.Context, vec []float32, userID string) ([]SearchHit, error) {
	body := searchRequest{
		Vector:      vec,
		Limit:       searchLimit,
		WithPayload: true,
		Filter:      userFilter(userID),
	}

	var out searchResponse
	if err := c.post(ctx, fmt.Sprintf("/collections/%s/points/search", c.collection), body, &out); err != nil {
		return nil, err
	}
	return out.Result, nil
}

type scrollRequest struct {
	Limit       int          `json:"limit"`
	WithPayload bool         `json:"with_payload"`
	WithVector  bool         `json:"with_vector"`
	Filter      pointsFilter `json:"filter"`
}

type ScrollPoint struct {
	ID      any            `json:"id"`
	Payload map[string]any `json:"payload"`
}

type scrollResponse struct {
	Result struct {
		Points []ScrollPoint `json:"points"`
	} `json:"result"`
}

// Scroll fetches a single page of up to 100 points for userID, vectors
// omitted. No continuation cursor is followed; the cap is a deliberate bound.
func (c *Client) Scroll(ctx context.Context, userID string) ([]ScrollPoint, error) {
	body := scrollRequest{
		Limit:       scrollPageSize,
		WithPayload: true,
		WithVector:  false,
		Filter:      userFilter(userID),
	}

	var out scrollResponse
	if err := c.post(ctx, fmt.Sprintf("/collections/%s/points/scroll", c.collection), body, &out); err != nil {
		return nil, err
	}
	return out.Result.Points, nil
}

type deleteRequest struct {
	Points []string `json:"points"`
}

// DeleteByID removes a single point. This is the fallback path for memories
// the write API does not own; any relational-log row for them stays behind.
func (c *Client) DeleteByID(ctx context.Context, id string) error {
	body := deleteRequest{Points: []string{id}}
	return c.post(ctx, fmt.Sprintf("/collections/%s/points/delete", c.collection), body, nil)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("qdrant: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("qdrant: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("qdrant: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant: %s status %s", path, resp.Status)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("qdrant: decode response: %w", err)
	}
	return nil
}

// IDString renders a point id of either wire type as a string.
func IDString(id any) string {
	switch v := id.(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
