// Package search provides web search provider implementations for the
// search gateway.
//
// Available providers:
//
//   - SerpAPI: Google organic results via serpapi.com (the default)
//   - Brave: Requires API key via X-Subscription-Token header
//   - Tavily: Requires API key, supports basic/advanced depth modes
//
// All providers implement the Provider interface:
//
//	type Provider interface {
//	    Search(ctx context.Context, query string) ([]schema.SearchResult, error)
//	}
//
// A call is all-or-nothing: any transport or provider error fails the
// whole search, there is no partial result recovery.
package search

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/citeseek/citeseek/schema"
)

// Provider returns ranked web results for a free text query.
type Provider interface {
	Search(ctx context.Context, query string) ([]schema.SearchResult, error)
}

// ErrMissingAPIKey reports an unset provider credential. It is surfaced
// per request so a missing key never prevents the server from starting.
var ErrMissingAPIKey = errors.New("search: API key is missing")

// maxResults caps how many results a provider returns for one query.
const maxResults = 10

// displayHost derives a human readable display link from a result URL
// for providers that do not supply one themselves.
func displayHost(link string) string {
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.TrimPrefix(u.Host, "www.")
}
