package llm

import (
	"context"
	"errors"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// DefaultAnthropicModel is used when the configured model is the Ollama
// default.
const DefaultAnthropicModel = "claude-haiku-4-5-20251001"

type anthropicClient struct {
	cfg      LLMConfig
	api      *anthropic.Client
	observer Observer
}

// NewAnthropicClient uses the Messages API. Retries are driven by our own
// loop, so the SDK's are disabled.
func NewAnthropicClient(cfg LLMConfig, observer Observer) LLMClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	if cfg.Model == "" || cfg.Model == DefaultConfig().Model {
		cfg.Model = DefaultAnthropicModel
	}

	opts := []option.RequestOption{option.WithMaxRetries(0)}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.Endpoint != "" && cfg.Endpoint != DefaultConfig().Endpoint {
		opts = append(opts, option.WithBaseURL(cfg.Endpoint))
	}
	client := anthropic.NewClient(opts...)
	return &anthropicClient{cfg: cfg, api: &client, observer: observer}
}

func (c *anthropicClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	temp, maxTok := c.cfg.resolve(req)
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.cfg.Model),
		MaxTokens:   int64(maxTok),
		Temperature: anthropic.Float(temp),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.UserPrompt)),
		},
	}
	if req.SystemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.SystemPrompt}}
	}

	return runWithRetry(ctx, c.cfg, req.Task, c.observer, isConnectionError, func(ctx context.Context) (string, string, error) {
		msg, err := c.api.Messages.New(ctx, params)
		if err != nil {
			return "", "", err
		}
		for _, block := range msg.Content {
			if block.Type == "text" {
				return block.Text, string(msg.Model), nil
			}
		}
		return "", "", errors.New("no text content in response")
	})
}

// Available reports whether an API key is configured; the Messages API has
// no free health endpoint.
func (c *anthropicClient) Available(ctx context.Context) bool {
	return c.cfg.APIKey != "" || c.cfg.Endpoint != DefaultConfig().Endpoint
}

