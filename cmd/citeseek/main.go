package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/citeseek/citeseek/components"
	"github.com/citeseek/citeseek/config"
	"github.com/citeseek/citeseek/search"
	"github.com/citeseek/citeseek/server"
	"github.com/citeseek/citeseek/synthesis"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	synthesizer := synthesis.New(
		synthesis.WithLLM(newLLM(cfg.LLM)),
		synthesis.WithModel(cfg.LLM.Model),
	)
	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: server.New(newSearchProvider(cfg.Search), synthesizer).Handler(),
	}

	go func() {
		log.Printf("Starting citeseek server on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down citeseek server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("citeseek server exited")
}

func newSearchProvider(cfg config.SearchConfig) search.Provider {
	switch cfg.Provider {
	case "brave":
		return search.NewBrave(cfg.APIKey)
	case "tavily":
		return search.NewTavily(cfg.APIKey, cfg.Depth)
	default:
		return search.NewSerpAPI(cfg.APIKey)
	}
}

func newLLM(cfg config.LLMConfig) components.LLM {
	switch cfg.Provider {
	case "anthropic":
		return components.NewAnthropic(cfg.APIKey, cfg.BaseURL)
	case "cohere":
		return components.NewCohere(cfg.APIKey, cfg.BaseURL)
	default:
		return components.NewOpenAI(cfg.APIKey, cfg.BaseURL)
	}
}
