// Package components provides the language model client abstraction used
// by the answer synthesizer. A single Chat oriented interface is backed
// by OpenAI, Anthropic and Cohere providers.
package components

import (
	"context"
)

// MessageRole is the role of the message sender (e.g., 'user', 'system')
type MessageRole = string

const (
	SystemRole    MessageRole = "system"
	UserRole      MessageRole = "user"
	AssistantRole MessageRole = "assistant"
)

// Message is a single chat message sent to a model provider.
type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// NewMessage returns a new Message
func NewMessage(role MessageRole, content string) Message {
	return Message{Role: role, Content: content}
}

// ChatRequest is a plain text completion request. Sampling parameters are
// passed through to the provider unchanged; exact reproducibility across
// calls is not guaranteed at non-zero temperature.
type ChatRequest struct {
	Model       string
	Temperature float32
	MaxTokens   int
	Messages    []Message
}

// ChatResponse is a provider chat response reduced to the fields the
// synthesizer consumes.
type ChatResponse struct {
	ID      string `json:"id,omitempty"`
	Model   string `json:"model,omitempty"`
	Content string `json:"content,omitempty"`
	Usage   *Usage `json:"usage,omitempty"`
}

type Usage struct {
	InputTokens  int `json:"input_tokens,omitempty"`
	OutputTokens int `json:"output_tokens,omitempty"`
}

func (u *Usage) Merge(v *Usage) {
	if v == nil {
		return
	}
	u.InputTokens += v.InputTokens
	u.OutputTokens += v.OutputTokens
}

// LLM is the client interface for a language model inference provider.
type LLM interface {
	Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error)
}
