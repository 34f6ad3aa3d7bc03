package openmemory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// StatusError is a non-2xx response from the write API. The delete fallback
// triggers on this error class only; transport failures pass through
// untouched.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("openmemory: status %s", e.Status)
}

// Client talks to the mediating write API, which fans writes out to its
// relational log and the vector index together.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Outcome is one per-memory result in an add response. Event is "" when the
// API omitted it, which counts as an add.
type Outcome struct {
	Event  string `json:"event"`
	Memory string `json:"memory"`
	Text   string `json:"text"`
}

// StoredText returns whichever text field the API populated.
func (o Outcome) StoredText() string {
	if o.Memory != "" {
		return o.Memory
	}
	return o.Text
}

type addResponse struct {
	Results []Outcome `json:"results"`
	Items   []Outcome `json:"items"`
}

// AddResult carries the parsed outcomes plus the raw body for the degraded
// echo path when no outcome matched the expected shape.
type AddResult struct {
	Outcomes []Outcome
	Raw      []byte
}

// Add submits text for storage under userID. The response shape varies by
// API version: an empty or null body means accepted, otherwise per-memory
// outcomes arrive under "results" or "items".
func (c *Client) Add(ctx context.Context, text, userID string) (*AddResult, error) {
	body, err := json.Marshal(map[string]string{"text": text, "user_id": userID})
	if err != nil {
		return nil, fmt.Errorf("openmemory: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/memories/", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("openmemory: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openmemory: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openmemory: read response: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return &AddResult{}, nil
	}

	var parsed addResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		// Unexpected shape degrades to the raw echo path, not a failure.
		return &AddResult{Raw: raw}, nil
	}

	outcomes := parsed.Results
	if len(outcomes) == 0 {
		outcomes = parsed.Items
	}
	return &AddResult{Outcomes: outcomes, Raw: raw}, nil
}

// Delete removes a memory through the write API so both stores stay in sync.
// A non-2xx response comes back as *StatusError.
func (c *Client) Delete(ctx context.Context, memoryID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, fmt.Sprintf("%s/api/v1/memories/%s/", c.baseURL, memoryID), nil)
	if err != nil {
		return fmt.Errorf("openmemory: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("openmemory: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}
	return nil
}
