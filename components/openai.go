package components

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAI is the LLM implementation backed by the OpenAI chat completion API.
type OpenAI struct {
	client *openai.Client
}

var _ LLM = (*OpenAI)(nil)

// NewOpenAI returns an OpenAI client. baseURL may be empty to use the
// public endpoint.
func NewOpenAI(authToken string, baseURL string) *OpenAI {
	cfg := openai.DefaultConfig(authToken)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAI{client: openai.NewClientWithConfig(cfg)}
}

func (c *OpenAI) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	chatReq := openai.ChatCompletionRequest{
		Model:       req.Model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	for _, msg := range req.Messages {
		chatReq.Messages = append(chatReq.Messages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}
	res, err := c.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, err
	}
	ret := &ChatResponse{
		ID:    res.ID,
		Model: res.Model,
		Usage: &Usage{
			InputTokens:  res.Usage.PromptTokens,
			OutputTokens: res.Usage.CompletionTokens,
		},
	}
	if len(res.Choices) > 0 {
		ret.Content = res.Choices[0].Message.Content
	}
	return ret, nil
}
