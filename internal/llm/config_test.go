package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.False(t, cfg.Enabled)
	assert.Equal(t, ProviderOllama, cfg.Provider)
	assert.Equal(t, "mistral", cfg.Model)
	assert.Equal(t, 150, cfg.Tasks[TaskChat].MaxTokens)
	assert.Zero(t, cfg.Tasks[TaskClassify].Temperature)
}

func TestTaskTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TimeoutMs = 9000

	assert.Equal(t, 9*time.Second, cfg.TaskTimeout(TaskChat))
	assert.Equal(t, 15*time.Second, cfg.TaskTimeout(TaskClassify))
	assert.Equal(t, 9*time.Second, cfg.TaskTimeout("unknown"))
}

func TestResolve_Overrides(t *testing.T) {
	cfg := DefaultConfig()
	temp, tokens := 0.9, 42

	gotTemp, gotTokens := cfg.resolve(GenerateRequest{Task: TaskChat})
	assert.Equal(t, 0.3, gotTemp)
	assert.Equal(t, 150, gotTokens)

	gotTemp, gotTokens = cfg.resolve(GenerateRequest{Task: TaskChat, Temperature: &temp, MaxTokens: &tokens})
	assert.Equal(t, 0.9, gotTemp)
	assert.Equal(t, 42, gotTokens)
}

func TestParseProvider(t *testing.T) {
	for _, name := range []string{"ollama", "anthropic", "gemini"} {
		p, err := ParseProvider(name)
		require.NoError(t, err)
		assert.Equal(t, Provider(name), p)
	}

	_, err := ParseProvider("openai")
	assert.Error(t, err)
}
