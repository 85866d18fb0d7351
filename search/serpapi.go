package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/citeseek/citeseek/schema"
)

// SerpAPI queries Google organic results through serpapi.com.
type SerpAPI struct {
	APIKey string
	// BaseURL points at the SerpAPI endpoint, overridable for tests.
	BaseURL string
	// Engine is the SerpAPI engine parameter.
	Engine string
	client *http.Client
}

var _ Provider = (*SerpAPI)(nil)

// NewSerpAPI constructs a SerpAPI search provider.
func NewSerpAPI(apiKey string) *SerpAPI {
	return NewSerpAPIWithClient(apiKey, &http.Client{Timeout: 10 * time.Second})
}

// NewSerpAPIWithClient constructs a SerpAPI search provider using the
// supplied HTTP client. This is useful for overriding the default timeout.
func NewSerpAPIWithClient(apiKey string, client *http.Client) *SerpAPI {
	return &SerpAPI{
		APIKey:  apiKey,
		BaseURL: "https://serpapi.com",
		Engine:  "google",
		client:  client,
	}
}

// Search requests up to 10 organic results for the query, preserving
// provider relevance order. Missing optional fields map to empty strings.
func (s *SerpAPI) Search(ctx context.Context, query string) ([]schema.SearchResult, error) {
	if strings.TrimSpace(s.APIKey) == "" {
		return nil, fmt.Errorf("serpapi: %w", ErrMissingAPIKey)
	}
	values := url.Values{}
	values.Set("q", query)
	values.Set("api_key", s.APIKey)
	values.Set("engine", s.Engine)
	values.Set("num", strconv.Itoa(maxResults))
	endpoint := fmt.Sprintf("%s/search?%s", s.BaseURL, values.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serpapi http %d", resp.StatusCode)
	}

	var payload struct {
		OrganicResults []struct {
			Title         string `json:"title"`
			Link          string `json:"link"`
			Snippet       string `json:"snippet"`
			DisplayedLink string `json:"displayed_link"`
		} `json:"organic_results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	results := make([]schema.SearchResult, 0, len(payload.OrganicResults))
	for _, r := range payload.OrganicResults {
		results = append(results, schema.SearchResult{
			Title:       r.Title,
			Link:        r.Link,
			Snippet:     r.Snippet,
			DisplayLink: r.DisplayedLink,
		})
		if len(results) >= maxResults {
			break
		}
	}
	return results, nil
}
