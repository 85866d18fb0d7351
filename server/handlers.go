package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/citeseek/citeseek/schema"
	"github.com/citeseek/citeseek/search"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"service": "citeseek",
	})
}

// handleSearch forwards a query to the search provider and returns the
// normalized result list.
func (s *Server) handleSearch(c *gin.Context) {
	var req schema.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Query) == "" {
		c.JSON(http.StatusBadRequest, schema.ErrorResponse{Error: "Query is required"})
		return
	}

	results, err := s.searcher.Search(c.Request.Context(), req.Query)
	if err != nil {
		if errors.Is(err, search.ErrMissingAPIKey) {
			c.JSON(http.StatusInternalServerError, schema.ErrorResponse{Error: "Search API key is not configured"})
			return
		}
		c.JSON(http.StatusInternalServerError, schema.ErrorResponse{Error: "Search failed"})
		return
	}
	if results == nil {
		results = []schema.SearchResult{}
	}
	c.JSON(http.StatusOK, schema.SearchResponse{Results: results})
}

// handleGenerate runs the answer synthesizer on a query plus the search
// results obtained by a preceding /search call. searchResults must be
// present but may be empty.
func (s *Server) handleGenerate(c *gin.Context) {
	var req schema.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Query) == "" {
		c.JSON(http.StatusBadRequest, schema.ErrorResponse{Error: "Query and search results are required"})
		return
	}

	payload, err := s.synthesizer.Synthesize(c.Request.Context(), req.Query, req.SearchResults)
	if err != nil {
		c.JSON(http.StatusInternalServerError, schema.ErrorResponse{Error: "Failed to generate response"})
		return
	}
	c.JSON(http.StatusOK, payload)
}
