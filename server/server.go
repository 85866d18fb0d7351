// Package server exposes the search gateway and answer synthesizer over
// a JSON HTTP API.
package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/citeseek/citeseek/search"
	"github.com/citeseek/citeseek/synthesis"
)

// Server wires the search provider and synthesizer behind the HTTP API.
// It holds no per-request state; every failure is scoped to one request.
type Server struct {
	engine      *gin.Engine
	searcher    search.Provider
	synthesizer *synthesis.Synthesizer
}

// New returns a Server with routes and middleware installed.
func New(searcher search.Provider, synthesizer *synthesis.Synthesizer) *Server {
	s := &Server{
		searcher:    searcher,
		synthesizer: synthesizer,
	}
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	engine.GET("/health", s.handleHealth)
	engine.POST("/search", s.handleSearch)
	engine.POST("/generate", s.handleGenerate)
	s.engine = engine
	return s
}

// Handler returns the root HTTP handler for use with an http.Server.
func (s *Server) Handler() http.Handler {
	return s.engine
}
