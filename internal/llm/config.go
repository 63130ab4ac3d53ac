package llm

import (
	"fmt"
	"time"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskChat     TaskType = "chat"
	TaskClassify TaskType = "classify"
)

// Provider names a model backend.
type Provider string

const (
	ProviderOllama    Provider = "ollama"
	ProviderAnthropic Provider = "anthropic"
	ProviderGemini    Provider = "gemini"
)

// ParseProvider accepts the names used in configuration.
func ParseProvider(s string) (Provider, error) {
	switch p := Provider(s); p {
	case ProviderOllama, ProviderAnthropic, ProviderGemini:
		return p, nil
	}
	return "", fmt.Errorf("unknown llm provider %q (want ollama, anthropic or gemini)", s)
}

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Enabled    bool
	LogCalls   bool
	Provider   Provider
	Endpoint   string // Ollama base URL, or an API base URL override for hosted providers
	Model      string
	APIKey     string
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig matches a local Ollama running mistral. The LLM is
// disabled until configured.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:    false,
		Provider:   ProviderOllama,
		Endpoint:   "http://localhost:11434",
		Model:      "mistral",
		TimeoutMs:  60000,
		MaxRetries: 1,
		Tasks: map[TaskType]TaskConfig{
			TaskChat:     {Temperature: 0.3, MaxTokens: 150},
			TaskClassify: {Temperature: 0, MaxTokens: 10, TimeoutMs: 15000},
		},
	}
}

// TaskTimeout returns the effective timeout for a task: the task-specific
// value if set, otherwise the global one.
func (c LLMConfig) TaskTimeout(task TaskType) time.Duration {
	ms := c.TimeoutMs
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		ms = tc.TimeoutMs
	}
	return time.Duration(ms) * time.Millisecond
}

// resolve merges per-request overrides over the task defaults.
func (c LLMConfig) resolve(req GenerateRequest) (temperature float64, maxTokens int) {
	tc := c.Tasks[req.Task]
	temperature, maxTokens = tc.Temperature, tc.MaxTokens
	if req.Temperature != nil {
		temperature = *req.Temperature
	}
	if req.MaxTokens != nil {
		maxTokens = *req.MaxTokens
	}
	return temperature, maxTokens
}
