package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/citeseek/citeseek/schema"
)

// Tavily calls the Tavily search API.
type Tavily struct {
	APIKey string
	// BaseURL points at the Tavily API, overridable for tests.
	BaseURL string
	// Depth controls Tavily's depth parameter (basic or advanced).
	Depth  string
	client *http.Client
}

var _ Provider = (*Tavily)(nil)

// NewTavily constructs a Tavily search provider.
func NewTavily(apiKey string, depth string) *Tavily {
	return NewTavilyWithClient(apiKey, depth, &http.Client{Timeout: 10 * time.Second})
}

// NewTavilyWithClient constructs a Tavily search provider using the
// supplied HTTP client.
func NewTavilyWithClient(apiKey string, depth string, client *http.Client) *Tavily {
	if depth == "" {
		depth = "basic"
	}
	return &Tavily{
		APIKey:  apiKey,
		BaseURL: "https://api.tavily.com",
		Depth:   depth,
		client:  client,
	}
}

// Search posts a query to Tavily. Tavily supplies no display link, so it
// is derived from the result URL host.
func (t *Tavily) Search(ctx context.Context, query string) ([]schema.SearchResult, error) {
	if strings.TrimSpace(t.APIKey) == "" {
		return nil, fmt.Errorf("tavily: %w", ErrMissingAPIKey)
	}

	body := map[string]any{
		"query":   query,
		"api_key": t.APIKey,
		"depth":   t.Depth,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.BaseURL+"/search", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tavily http %d", resp.StatusCode)
	}

	var response struct {
		Results []struct {
			Title   string `json:"title"`
			URL     string `json:"url"`
			Content string `json:"content"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, err
	}

	results := make([]schema.SearchResult, 0, len(response.Results))
	for _, r := range response.Results {
		results = append(results, schema.SearchResult{
			Title:       r.Title,
			Link:        r.URL,
			Snippet:     r.Content,
			DisplayLink: displayHost(r.URL),
		})
		if len(results) >= maxResults {
			break
		}
	}
	return results, nil
}
