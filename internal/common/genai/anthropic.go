// internal/common/genai/anthropic.go
package genai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const systemPrompt = "You are an accelerator program analyst. Answer only with the JSON requested, no commentary."

// Generator turns a prompt into raw model text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type AnthropicConfig struct {
	APIKey    string
	Model     string
	MaxTokens int
	Timeout   time.Duration
}

// AnthropicGenerator calls the Messages API.
type AnthropicGenerator struct {
	client anthropic.Client
	config AnthropicConfig
}

func NewAnthropicGenerator(cfg AnthropicConfig) *AnthropicGenerator {
	return &AnthropicGenerator{
		client: anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		config: cfg,
	}
}

func (g *AnthropicGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.config.Timeout)
		defer cancel()
	}

	message, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(g.config.Model),
		MaxTokens: int64(g.config.MaxTokens),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API error: %w", err)
	}

	var sb strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}
