package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/marty/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadConfig(t *testing.T) *config.Config {
	t.Helper()
	home := t.TempDir()
	cfg, err := config.Load(config.Options{Home: home})
	require.NoError(t, err)
	cfg.LogFile = filepath.Join(home, "logs", "marty.log")
	return cfg
}

func TestWiring_BuildWithoutLLM(t *testing.T) {
	cfg := loadConfig(t)
	cfg.LLM.Enabled = false

	w := &wiring{}
	app, err := w.Build(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, w.Close()) })

	assert.Nil(t, app.LLM)
	assert.False(t, app.Assistant.ChatEnabled())
	assert.FileExists(t, cfg.DBPath)

	n, err := app.Calendar.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestWiring_BuildWithLLM(t *testing.T) {
	cfg := loadConfig(t)
	cfg.LLM.Enabled = true
	cfg.LLM.Provider = "ollama"

	w := &wiring{}
	app, err := w.Build(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, w.Close()) })

	assert.NotNil(t, app.LLM)
	assert.True(t, app.Assistant.ChatEnabled())
}

func TestWiring_GeminiNeedsKey(t *testing.T) {
	cfg := loadConfig(t)
	cfg.LLM.Enabled = true
	cfg.LLM.Provider = "gemini"
	cfg.LLM.APIKey = ""

	w := &wiring{}
	_, err := w.Build(context.Background(), cfg)
	require.Error(t, err)
	require.NoError(t, w.Close())
}
