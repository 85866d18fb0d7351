package conversation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/citeseek/citeseek/schema"
)

// Client calls the /search and /generate endpoints of a citeseek server.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient constructs a Client for the server at baseURL. The default
// HTTP client carries a timeout sized for a full model round trip so a
// hung provider call cannot hang the conversation indefinitely.
func NewClient(baseURL string) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{Timeout: 60 * time.Second})
}

// NewClientWithHTTP constructs a Client using the supplied HTTP client.
func NewClientWithHTTP(baseURL string, client *http.Client) *Client {
	return &Client{baseURL: baseURL, client: client}
}

// Search fetches normalized web results for the query.
func (c *Client) Search(ctx context.Context, query string) ([]schema.SearchResult, error) {
	req := schema.SearchRequest{Query: query}
	if err := schema.Validate(&req); err != nil {
		return nil, err
	}
	var out schema.SearchResponse
	if err := c.post(ctx, "/search", &req, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// Generate asks the server to synthesize an answer for the query using
// the previously fetched results.
func (c *Client) Generate(ctx context.Context, query string, results []schema.SearchResult) (*schema.AnswerPayload, error) {
	if results == nil {
		results = []schema.SearchResult{}
	}
	req := schema.GenerateRequest{Query: query, SearchResults: results}
	if err := schema.Validate(&req); err != nil {
		return nil, err
	}
	out := new(schema.AnswerPayload)
	if err := c.post(ctx, "/generate", &req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr schema.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("citeseek http %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("citeseek http %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
