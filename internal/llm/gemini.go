package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when the configured model is the Ollama default.
const DefaultGeminiModel = "gemini-2.5-flash"

type geminiClient struct {
	cfg      LLMConfig
	client   *genai.Client
	observer Observer
}

// NewGeminiClient uses the Gemini API backend.
func NewGeminiClient(ctx context.Context, cfg LLMConfig, observer Observer) (LLMClient, error) {
	if observer == nil {
		observer = NoopObserver{}
	}
	if cfg.Model == "" || cfg.Model == DefaultConfig().Model {
		cfg.Model = DefaultGeminiModel
	}
	if cfg.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.Endpoint != "" && cfg.Endpoint != DefaultConfig().Endpoint {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.Endpoint}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &geminiClient{cfg: cfg, client: client, observer: observer}, nil
}

func (c *geminiClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	temp, maxTok := c.cfg.resolve(req)
	gc := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(temp)),
		MaxOutputTokens: int32(maxTok),
	}
	if req.SystemPrompt != "" {
		gc.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.RoleUser)
	}
	contents := []*genai.Content{genai.NewContentFromText(req.UserPrompt, genai.RoleUser)}

	return runWithRetry(ctx, c.cfg, req.Task, c.observer, isConnectionError, func(ctx context.Context) (string, string, error) {
		resp, err := c.client.Models.GenerateContent(ctx, c.cfg.Model, contents, gc)
		if err != nil {
			return "", "", err
		}
		text := resp.Text()
		if text == "" {
			return "", "", errors.New("no text content in response")
		}
		return text, resp.ModelVersion, nil
	})
}

func (c *geminiClient) Available(context.Context) bool {
	return c.cfg.APIKey != ""
}
