package intelligence

import (
	"context"
	"sync"

	"github.com/alexanderramin/marty/internal/llm"
)

type mockLLMClient struct {
	mu       sync.Mutex
	response string
	err      error
	requests []llm.GenerateRequest
}

func (m *mockLLMClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return &llm.GenerateResponse{Text: m.response, Model: "mistral"}, nil
}

func (m *mockLLMClient) Available(_ context.Context) bool { return m.err == nil }

func (m *mockLLMClient) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}
