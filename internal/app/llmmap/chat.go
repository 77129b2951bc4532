package llmmap

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
)

// ChatClient answers a single user prompt with plain text.
type ChatClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// thinkBlocks strips chain-of-thought sections some models wrap in
// <think>...</think> tags before the actual answer.
var thinkBlocks = regexp.MustCompile(`(?s)<think>.*?</think>`)

// AnthropicClient implements ChatClient against the Anthropic Messages API.
type AnthropicClient struct {
	client anthropic.Client
	model  string
}

// NewAnthropicClient wraps an anthropic.Client for one model.
func NewAnthropicClient(client anthropic.Client, model string) *AnthropicClient {
	return &AnthropicClient{client: client, model: model}
}

// Complete sends the prompt as a single user message and returns the trimmed
// answer text.
func (c *AnthropicClient) Complete(ctx context.Context, prompt string) (string, error) {
	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: 1024,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("llm api call: %w", err)
	}
	if len(msg.Content) == 0 {
		return "", fmt.Errorf("empty response")
	}

	answer := thinkBlocks.ReplaceAllString(msg.Content[0].Text, "")
	return strings.TrimSpace(answer), nil
}
