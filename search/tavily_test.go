package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTavilySearch(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		payload := map[string]any{
			"results": []map[string]string{
				{"title": "Go", "url": "https://www.golang.org/doc", "content": "Go docs"},
			},
		}
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	provider := NewTavily("test-key", "")
	provider.BaseURL = srv.URL
	results, err := provider.Search(context.Background(), "golang docs")
	if err != nil {
		t.Fatalf("Error running tavily search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Error number of results, expect 1, but got %d", len(results))
	}
	if got := results[0].DisplayLink; got != "golang.org" {
		t.Errorf("Expect displayLink golang.org, but got %s", got)
	}
	if got := results[0].Snippet; got != "Go docs" {
		t.Errorf("Expect snippet Go docs, but got %s", got)
	}
	if got, _ := gotBody["depth"].(string); got != "basic" {
		t.Errorf("Expect default depth basic, but got %s", got)
	}
}

func TestDisplayHost(t *testing.T) {
	cases := []struct {
		link string
		want string
	}{
		{"https://www.example.com/path", "example.com"},
		{"https://sub.example.com", "sub.example.com"},
		{"not a url", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := displayHost(c.link); got != c.want {
			t.Errorf("displayHost(%q) = %q, expect %q", c.link, got, c.want)
		}
	}
}
