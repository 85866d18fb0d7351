package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/citeseek/citeseek/schema"
)

// Brave uses the Brave Search API. An API key is required via
// X-Subscription-Token.
type Brave struct {
	APIKey string
	// BaseURL points at the Brave API, overridable for tests.
	BaseURL string
	client  *http.Client
}

var _ Provider = (*Brave)(nil)

// NewBrave constructs a Brave search provider.
func NewBrave(apiKey string) *Brave {
	return NewBraveWithClient(apiKey, &http.Client{Timeout: 10 * time.Second})
}

// NewBraveWithClient constructs a Brave search provider using the
// supplied HTTP client.
func NewBraveWithClient(apiKey string, client *http.Client) *Brave {
	return &Brave{
		APIKey:  apiKey,
		BaseURL: "https://api.search.brave.com",
		client:  client,
	}
}

// Search executes a Brave web search. Brave supplies no display link, so
// it is derived from the result URL host.
func (b *Brave) Search(ctx context.Context, query string) ([]schema.SearchResult, error) {
	if strings.TrimSpace(b.APIKey) == "" {
		return nil, fmt.Errorf("brave: %w", ErrMissingAPIKey)
	}
	endpoint := fmt.Sprintf("%s/res/v1/web/search?q=%s", b.BaseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", b.APIKey)

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("brave http %d", resp.StatusCode)
	}

	var payload struct {
		Web struct {
			Results []struct {
				Title       string `json:"title"`
				URL         string `json:"url"`
				Description string `json:"description"`
			} `json:"results"`
		} `json:"web"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	results := make([]schema.SearchResult, 0, len(payload.Web.Results))
	for _, r := range payload.Web.Results {
		results = append(results, schema.SearchResult{
			Title:       r.Title,
			Link:        r.URL,
			Snippet:     r.Description,
			DisplayLink: displayHost(r.URL),
		})
		if len(results) >= maxResults {
			break
		}
	}
	return results, nil
}
