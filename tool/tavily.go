package tool

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Tavily is a search backend using the Tavily API.
type Tavily struct {
	APIKey     string
	BaseURL    string
	MaxResults int
	Depth      string
	HTTPClient *http.Client
}

var _ Search = (*Tavily)(nil)

type TavilyOption func(*Tavily)

// WithTavilyBaseURL sets the base URL for the Tavily API.
func WithTavilyBaseURL(baseURL string) TavilyOption {
	return func(t *Tavily) {
		t.BaseURL = baseURL
	}
}

// WithTavilyMaxResults sets the number of results to return (1-20).
func WithTavilyMaxResults(n int) TavilyOption {
	return func(t *Tavily) {
		if n < 1 {
			n = 1
		}
		if n > 20 {
			n = 20
		}
		t.MaxResults = n
	}
}

// WithTavilyDepth sets the search depth, "basic" or "advanced".
func WithTavilyDepth(depth string) TavilyOption {
	return func(t *Tavily) {
		t.Depth = depth
	}
}

// WithTavilyHTTPClient sets a custom HTTP client.
func WithTavilyHTTPClient(client *http.Client) TavilyOption {
	return func(t *Tavily) {
		t.HTTPClient = client
	}
}

// NewTavily creates a new Tavily search backend.
func NewTavily(apiKey string, opts ...TavilyOption) (*Tavily, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("tavily api key not set")
	}

	t := &Tavily{
		APIKey:     apiKey,
		BaseURL:    "https://api.tavily.com/search",
		MaxResults: 3,
		Depth:      "basic",
		HTTPClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Name returns the backend name.
func (t *Tavily) Name() string {
	return "tavily"
}

type tavilyResult struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

type tavilyResponse struct {
	Results []tavilyResult `json:"results"`
}

// Search runs a query against the Tavily API.
func (t *Tavily) Search(ctx context.Context, query string) ([]Result, error) {
	reqBody := map[string]any{
		"query":        query,
		"api_key":      t.APIKey,
		"search_depth": t.Depth,
		"max_results":  t.MaxResults,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", t.BaseURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tavily api status: %d", resp.StatusCode)
	}

	var body tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	results := make([]Result, 0, len(body.Results))
	for _, r := range body.Results {
		results = append(results, Result{
			Title:   r.Title,
			URL:     r.URL,
			Content: r.Content,
		})
	}
	return results, nil
}
