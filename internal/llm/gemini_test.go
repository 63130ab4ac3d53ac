package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiClient_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/"+DefaultGeminiModel+":generateContent"), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"candidates": [{"content": {"role": "model", "parts": [{"text": "Hello!"}]}}],
			"modelVersion": "gemini-2.5-flash"
		}`))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.Provider = ProviderGemini
	cfg.APIKey = "test-key"

	client, err := NewGeminiClient(context.Background(), cfg, NoopObserver{})
	require.NoError(t, err)

	resp, err := client.Generate(context.Background(), GenerateRequest{Task: TaskChat, SystemPrompt: "sys", UserPrompt: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "Hello!", resp.Text)
	assert.Equal(t, "gemini-2.5-flash", resp.Model)
}

func TestGeminiClient_RequiresAPIKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderGemini

	_, err := NewGeminiClient(context.Background(), cfg, nil)
	assert.Error(t, err)
}
