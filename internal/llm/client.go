package llm

import (
	"context"
	"fmt"
	"time"
)

// GenerateRequest holds the parameters for an LLM generation call.
type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	UserPrompt   string
	Temperature  *float64 // nil uses task default
	MaxTokens    *int     // nil uses task default
}

// GenerateResponse holds the result of an LLM generation call.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// LLMClient provides access to a language model for text generation.
type LLMClient interface {
	// Generate sends a prompt and returns the raw text response.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Available reports whether the backend can be reached.
	Available(ctx context.Context) bool
}

// NewClient builds the client for cfg.Provider.
func NewClient(ctx context.Context, cfg LLMConfig, observer Observer) (LLMClient, error) {
	if observer == nil {
		observer = NoopObserver{}
	}
	switch cfg.Provider {
	case ProviderOllama, "":
		return NewOllamaClient(cfg, observer), nil
	case ProviderAnthropic:
		return NewAnthropicClient(cfg, observer), nil
	case ProviderGemini:
		return NewGeminiClient(ctx, cfg, observer)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

// callFunc performs one attempt against a backend and returns the text and
// the model that produced it.
type callFunc func(ctx context.Context) (text, model string, err error)

// runWithRetry drives the attempt loop shared by every provider: a task
// timeout around all attempts, no retry once the context is done, and one
// observer event per Generate call.
func runWithRetry(ctx context.Context, cfg LLMConfig, task TaskType, observer Observer, isUnavailable func(error) bool, call callFunc) (*GenerateResponse, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, cfg.TaskTimeout(task))
	defer cancel()

	var lastErr error
	for i := 0; i < 1+cfg.MaxRetries; i++ {
		text, model, err := call(ctx)
		if err == nil {
			latency := time.Since(start).Milliseconds()
			observer.OnCallComplete(LLMCallEvent{
				Task: task, Provider: cfg.Provider, Model: cfg.Model,
				LatencyMs: latency, Success: true,
			})
			if model == "" {
				model = cfg.Model
			}
			return &GenerateResponse{Text: text, Model: model, LatencyMs: latency}, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}

	var err error
	switch {
	case ctx.Err() != nil:
		err = ErrTimeout
	case isUnavailable != nil && isUnavailable(lastErr):
		err = fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
	default:
		err = fmt.Errorf("%w: %v", ErrRetryExhausted, lastErr)
	}

	observer.OnCallComplete(LLMCallEvent{
		Task: task, Provider: cfg.Provider, Model: cfg.Model,
		LatencyMs: time.Since(start).Milliseconds(), ErrorCode: errorCode(err),
	})
	return nil, err
}
