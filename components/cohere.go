package components

import (
	"context"
	"errors"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereClient "github.com/cohere-ai/cohere-go/v2/client"
	cohereOption "github.com/cohere-ai/cohere-go/v2/option"
)

// Cohere is the LLM implementation backed by the Cohere chat API.
type Cohere struct {
	client *cohereClient.Client
}

var _ LLM = (*Cohere)(nil)

// NewCohere returns a Cohere client. baseURL may be empty to use the
// public endpoint.
func NewCohere(authToken string, baseURL string) *Cohere {
	opts := make([]cohereOption.RequestOption, 0, 2)
	opts = append(opts, cohereOption.WithToken(authToken))
	if baseURL != "" {
		opts = append(opts, cohereOption.WithBaseURL(baseURL))
	}
	return &Cohere{client: cohereClient.NewClient(opts...)}
}

func (c *Cohere) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	lastIdx := len(req.Messages) - 1
	if lastIdx < 0 {
		return nil, errors.New("cohere: empty message list")
	}
	temperature := float64(req.Temperature)
	maxTokens := req.MaxTokens
	chatReq := cohere.ChatRequest{
		Model:       &req.Model,
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
		Message:     req.Messages[lastIdx].Content,
	}
	for _, msg := range req.Messages[:lastIdx] {
		v := new(cohere.Message)
		toCohere(msg, v)
		chatReq.ChatHistory = append(chatReq.ChatHistory, v)
	}
	res, err := c.client.Chat(ctx, &chatReq)
	if err != nil {
		return nil, err
	}
	ret := &ChatResponse{Content: res.Text}
	if res.GenerationId != nil {
		ret.ID = *res.GenerationId
	}
	if meta := res.Meta; meta != nil {
		if usage := meta.Tokens; usage != nil {
			ret.Usage = new(Usage)
			if usage.InputTokens != nil {
				ret.Usage.InputTokens = int(*usage.InputTokens)
			}
			if usage.OutputTokens != nil {
				ret.Usage.OutputTokens = int(*usage.OutputTokens)
			}
		}
		if version := meta.ApiVersion; version != nil {
			ret.Model = version.Version
		}
	}
	return ret, nil
}

// toCohere converts a chat message to a cohere history entry.
func toCohere(m Message, dist *cohere.Message) {
	switch m.Role {
	case SystemRole:
		dist.Role = "SYSTEM"
		dist.System = &cohere.ChatMessage{Message: m.Content}
	case AssistantRole:
		dist.Role = "CHATBOT"
		dist.Chatbot = &cohere.ChatMessage{Message: m.Content}
	default:
		dist.Role = "USER"
		dist.User = &cohere.ChatMessage{Message: m.Content}
	}
}
