// Package llm wraps the Anthropic Messages API behind a small Completer
// interface so the generation pipeline can be tested against a mock.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Completer sends one chat-style prompt to a generative model and returns the
// raw response text.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Request is one completion call. Each generation tier uses a fixed token
// budget and temperature.
type Request struct {
	Prompt      string
	MaxTokens   int64
	Temperature float64
}

// Client is the Anthropic-backed Completer.
type Client struct {
	api   anthropic.Client
	model anthropic.Model
}

// NewClient creates a Client for the given API key and model identifier.
func NewClient(apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("llm.NewClient: missing API key")
	}
	if model == "" {
		return nil, fmt.Errorf("llm.NewClient: missing model identifier")
	}
	return &Client{
		api:   anthropic.NewClient(option.WithAPIKey(apiKey)),
		model: anthropic.Model(model),
	}, nil
}

// Complete sends the prompt and concatenates the text blocks of the response.
func (c *Client) Complete(ctx context.Context, req Request) (string, error) {
	msg, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       c.model,
		MaxTokens:   req.MaxTokens,
		Temperature: anthropic.Float(req.Temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("llm.Complete: message create: %w", err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("llm.Complete: empty response from model")
	}
	return b.String(), nil
}
