package intelligence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/marty/internal/llm"
)

// ErrModelUnreachable wraps any failure to get a chat reply.
var ErrModelUnreachable = errors.New("could not reach the language model")

// ChatService answers free-form input, possibly with a tool request.
type ChatService interface {
	Think(ctx context.Context, text string) (Reply, error)
}

type chatService struct {
	client llm.LLMClient
}

func NewChatService(client llm.LLMClient) ChatService {
	return &chatService{client: client}
}

func (s *chatService) Think(ctx context.Context, text string) (Reply, error) {
	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskChat,
		SystemPrompt: chatSystemPrompt,
		UserPrompt:   chatUserPrompt(text),
	})
	if err != nil {
		return Reply{}, fmt.Errorf("%w: %w", ErrModelUnreachable, err)
	}
	return ParseReply(resp.Text), nil
}

// ParseReply turns raw model output into a Reply. Output holding a JSON
// object with a "tool" key is a tool request; anything else is prose.
func ParseReply(raw string) Reply {
	text := strings.TrimSpace(raw)
	call, err := llm.ExtractJSON[rawToolCall](text, func(c rawToolCall) error {
		if c.Tool == nil {
			return errors.New("no tool key")
		}
		return nil
	})
	if err != nil {
		return Reply{Text: text}
	}
	return Reply{Tool: call.decode()}
}
