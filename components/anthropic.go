package components

import (
	"context"

	anthropic "github.com/liushuangls/go-anthropic/v2"
)

// Anthropic is the LLM implementation backed by the Anthropic messages API.
type Anthropic struct {
	client *anthropic.Client
}

var _ LLM = (*Anthropic)(nil)

// NewAnthropic returns an Anthropic client. baseURL may be empty to use
// the public endpoint.
func NewAnthropic(authToken string, baseURL string) *Anthropic {
	opts := make([]anthropic.ClientOption, 0, 1)
	if baseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(baseURL))
	}
	return &Anthropic{client: anthropic.NewClient(authToken, opts...)}
}

func (c *Anthropic) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	temperature := req.Temperature
	chatReq := anthropic.MessagesRequest{
		Model:       anthropic.Model(req.Model),
		Temperature: &temperature,
		MaxTokens:   req.MaxTokens,
	}
	for _, msg := range req.Messages {
		// The messages API carries the system instruction on the request
		// rather than in the message list.
		if msg.Role == SystemRole {
			chatReq.System = msg.Content
			continue
		}
		chatReq.Messages = append(chatReq.Messages, anthropic.Message{
			Role:    anthropic.ChatRole(msg.Role),
			Content: []anthropic.MessageContent{anthropic.NewTextMessageContent(msg.Content)},
		})
	}
	res, err := c.client.CreateMessages(ctx, chatReq)
	if err != nil {
		return nil, err
	}
	return &ChatResponse{
		ID:      res.ID,
		Model:   string(res.Model),
		Content: res.GetFirstContentText(),
		Usage: &Usage{
			InputTokens:  res.Usage.InputTokens,
			OutputTokens: res.Usage.OutputTokens,
		},
	}, nil
}
