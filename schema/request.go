package schema

// SearchRequest is the body of POST /search.
type SearchRequest struct {
	// Query is the free text query. Must be non-empty.
	Query string `json:"query" binding:"required" validate:"required"`
}

// GenerateRequest is the body of POST /generate. SearchResults must be
// present but may be empty; an answer without grounding is not an error.
type GenerateRequest struct {
	Query         string         `json:"query" binding:"required" validate:"required"`
	SearchResults []SearchResult `json:"searchResults" binding:"required" validate:"required"`
}

// SearchResponse is the body of a successful POST /search reply.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
}

// ErrorResponse is the uniform error body returned by both endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}
