// Package config loads server configuration from an optional YAML file
// with environment variable overrides. Credentials may be empty here; a
// missing key is a per-request condition, never a startup failure.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SearchConfig selects and configures the web search provider.
type SearchConfig struct {
	// Provider is one of serpapi, brave, tavily.
	Provider string `yaml:"provider"`
	APIKey   string `yaml:"api_key"`
	// Depth is the Tavily depth parameter, ignored by other providers.
	Depth string `yaml:"depth"`
}

// LLMConfig selects and configures the model provider.
type LLMConfig struct {
	// Provider is one of openai, anthropic, cohere.
	Provider string `yaml:"provider"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"`
	Model    string `yaml:"model"`
}

// Config holds the full server configuration.
type Config struct {
	// Addr is the listen address of the HTTP server.
	Addr string `yaml:"addr"`
	// Mode is the gin mode (debug, release, test).
	Mode   string       `yaml:"mode"`
	Search SearchConfig `yaml:"search"`
	LLM    LLMConfig    `yaml:"llm"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr: ":8080",
		Search: SearchConfig{
			Provider: "serpapi",
		},
		LLM: LLMConfig{
			Provider: "openai",
			Model:    "gpt-3.5-turbo",
		},
	}
}

// Load reads the optional YAML file at path (skipped when path is empty)
// and then applies environment overrides on top.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		bs, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(bs, &cfg); err != nil {
			return cfg, fmt.Errorf("config: %w", err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	setFromEnv(&c.Addr, "CITESEEK_ADDR")
	setFromEnv(&c.Mode, "GIN_MODE")

	setFromEnv(&c.Search.Provider, "SEARCH_PROVIDER")
	switch c.Search.Provider {
	case "brave":
		setFromEnv(&c.Search.APIKey, "BRAVE_API_KEY")
	case "tavily":
		setFromEnv(&c.Search.APIKey, "TAVILY_API_KEY")
		setFromEnv(&c.Search.Depth, "TAVILY_DEPTH")
	default:
		setFromEnv(&c.Search.APIKey, "SERPAPI_KEY")
	}

	setFromEnv(&c.LLM.Provider, "LLM_PROVIDER")
	switch c.LLM.Provider {
	case "anthropic":
		setFromEnv(&c.LLM.APIKey, "ANTHROPIC_API_KEY")
		setFromEnv(&c.LLM.BaseURL, "ANTHROPIC_API_BASE_URL")
	case "cohere":
		setFromEnv(&c.LLM.APIKey, "COHERE_API_KEY")
		setFromEnv(&c.LLM.BaseURL, "COHERE_API_BASE_URL")
	default:
		setFromEnv(&c.LLM.APIKey, "OPENAI_API_KEY")
		setFromEnv(&c.LLM.BaseURL, "OPENAI_API_BASE_URL")
	}
	setFromEnv(&c.LLM.Model, "LLM_MODEL")
}

func setFromEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
