// Package synthesis turns a query plus search results into a cited
// answer and a set of follow-up questions using a language model.
package synthesis

import (
	"context"
	"errors"
	"strings"

	"github.com/citeseek/citeseek/components"
	"github.com/citeseek/citeseek/schema"
)

// noResponseFallback replaces an empty model completion. An empty answer
// is not treated as an error.
const noResponseFallback = "No response generated"

// maxRelatedQuestions caps the follow-up question list.
const maxRelatedQuestions = 5

// ErrEmptyQuery reports a missing or blank query.
var ErrEmptyQuery = errors.New("synthesis: query is required")

// Config represents synthesizer configuration
type Config struct {
	// llm is the client for interacting with the language model
	llm components.LLM
	// model is the llm model
	model string
	// answerTemperature favors fluency over determinism for the answer call
	answerTemperature float32
	// answerMaxTokens bounds the answer length
	answerMaxTokens int
	// relatedTemperature is the sampling temperature of the follow-up call
	relatedTemperature float32
	// relatedMaxTokens bounds the follow-up completion length
	relatedMaxTokens int
}

type Option func(c *Config)

func WithLLM(clt components.LLM) Option {
	return func(c *Config) {
		c.llm = clt
	}
}

func WithModel(model string) Option {
	return func(c *Config) {
		c.model = model
	}
}

func WithAnswerTemperature(temperature float32) Option {
	return func(c *Config) {
		c.answerTemperature = temperature
	}
}

func WithAnswerMaxTokens(maxTokens int) Option {
	return func(c *Config) {
		c.answerMaxTokens = maxTokens
	}
}

func WithRelatedTemperature(temperature float32) Option {
	return func(c *Config) {
		c.relatedTemperature = temperature
	}
}

func WithRelatedMaxTokens(maxTokens int) Option {
	return func(c *Config) {
		c.relatedMaxTokens = maxTokens
	}
}

// Synthesizer generates a cited answer and related follow-up questions
// for a query grounded on the supplied search results. The two model
// calls behind one Synthesize are strictly sequential and atomic from
// the caller's perspective: an error from either call fails the whole
// operation.
type Synthesizer struct {
	Config
}

// New returns a Synthesizer with the default sampling parameters.
func New(options ...Option) *Synthesizer {
	ret := new(Synthesizer)
	for _, opt := range options {
		opt(&ret.Config)
	}
	if ret.answerTemperature == 0 {
		ret.answerTemperature = 0.7
	}
	if ret.answerMaxTokens == 0 {
		ret.answerMaxTokens = 1000
	}
	if ret.relatedTemperature == 0 {
		ret.relatedTemperature = 0.8
	}
	if ret.relatedMaxTokens == 0 {
		ret.relatedMaxTokens = 200
	}
	return ret
}

// Synthesize runs the answer call and then the related-questions call.
// sources may be empty; the returned payload carries the sources slice
// back verbatim, never filtered or reordered.
func (s *Synthesizer) Synthesize(ctx context.Context, query string, sources []schema.SearchResult) (*schema.AnswerPayload, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	answer, err := s.answer(ctx, query, sources)
	if err != nil {
		return nil, err
	}
	questions, err := s.relatedQuestions(ctx, query)
	if err != nil {
		return nil, err
	}
	return &schema.AnswerPayload{
		Response:         answer,
		Sources:          sources,
		RelatedQuestions: questions,
	}, nil
}

func (s *Synthesizer) answer(ctx context.Context, query string, sources []schema.SearchResult) (string, error) {
	req := &components.ChatRequest{
		Model:       s.model,
		Temperature: s.answerTemperature,
		MaxTokens:   s.answerMaxTokens,
		Messages: []components.Message{
			components.NewMessage(components.SystemRole, answerSystemPrompt),
			components.NewMessage(components.UserRole, answerPrompt(query, sources)),
		},
	}
	res, err := s.llm.Chat(ctx, req)
	if err != nil {
		return "", err
	}
	if res.Content == "" {
		return noResponseFallback, nil
	}
	return res.Content, nil
}

func (s *Synthesizer) relatedQuestions(ctx context.Context, query string) ([]string, error) {
	req := &components.ChatRequest{
		Model:       s.model,
		Temperature: s.relatedTemperature,
		MaxTokens:   s.relatedMaxTokens,
		Messages: []components.Message{
			components.NewMessage(components.SystemRole, relatedSystemPrompt),
			components.NewMessage(components.UserRole, relatedPrompt(query)),
		},
	}
	res, err := s.llm.Chat(ctx, req)
	if err != nil {
		return nil, err
	}
	return parseRelatedQuestions(res.Content), nil
}

// parseRelatedQuestions splits the raw completion into at most five
// non-empty questions, preserving model order. Fewer than five is
// accepted silently.
func parseRelatedQuestions(raw string) []string {
	questions := make([]string, 0, maxRelatedQuestions)
	for _, line := range strings.Split(raw, "\n") {
		q := strings.TrimSpace(line)
		if q == "" {
			continue
		}
		questions = append(questions, q)
		if len(questions) >= maxRelatedQuestions {
			break
		}
	}
	return questions
}
