package intelligence

import (
	"context"
	"testing"

	"github.com/alexanderramin/marty/internal/domain"
	"github.com/alexanderramin/marty/internal/llm"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func TestKeywordClassifier(t *testing.T) {
	tests := []struct {
		text string
		want domain.Confirmation
	}{
		{"yes", domain.Confirm},
		{"Yes!", domain.Confirm},
		{"  yeah ", domain.Confirm},
		{"sounds good.", domain.Confirm},
		{"Do it", domain.Confirm},
		{"no", domain.Decline},
		{"Nope.", domain.Decline},
		{"don’t", domain.Decline},
		{"never   mind", domain.Decline},
		{"maybe", domain.Unknown},
		{"yes no", domain.Unknown},
		{"", domain.Unknown},
		{"not sure", domain.Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, KeywordClassifier{}.Classify(context.Background(), tt.text))
		})
	}
}

func TestLLMClassifier_KeywordFastPath(t *testing.T) {
	client := &mockLLMClient{response: "DECLINE"}
	c := NewLLMClassifier(client, zaptest.NewLogger(t))

	assert.Equal(t, domain.Confirm, c.Classify(context.Background(), "yes"))
	assert.Zero(t, client.calls())
}

func TestLLMClassifier_AsksModel(t *testing.T) {
	tests := []struct {
		response string
		want     domain.Confirmation
	}{
		{"CONFIRM", domain.Confirm},
		{"confirm.", domain.Confirm},
		{"DECLINE", domain.Decline},
		{"No", domain.Decline},
		{"UNKNOWN", domain.Unknown},
		{"unknown", domain.Unknown},
		{"I cannot tell", domain.Unknown},
		{"", domain.Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.response, func(t *testing.T) {
			client := &mockLLMClient{response: tt.response}
			c := NewLLMClassifier(client, zaptest.NewLogger(t))

			assert.Equal(t, tt.want, c.Classify(context.Background(), "let's roll with it"))
			assert.Equal(t, 1, client.calls())
			assert.Equal(t, llm.TaskClassify, client.requests[0].Task)
			assert.Contains(t, client.requests[0].UserPrompt, "let's roll with it")
		})
	}
}

func TestLLMClassifier_ErrorIsUnknown(t *testing.T) {
	c := NewLLMClassifier(&mockLLMClient{err: llm.ErrTimeout}, nil)

	assert.Equal(t, domain.Unknown, c.Classify(context.Background(), "hmm, perhaps"))
}

func TestLLMClassifier_BlankSkipsModel(t *testing.T) {
	client := &mockLLMClient{response: "CONFIRM"}
	c := NewLLMClassifier(client, nil)

	assert.Equal(t, domain.Unknown, c.Classify(context.Background(), "   "))
	assert.Zero(t, client.calls())
}
