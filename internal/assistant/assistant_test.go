package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/marty/internal/app"
	"github.com/alexanderramin/marty/internal/conversation"
	"github.com/alexanderramin/marty/internal/domain"
	"github.com/alexanderramin/marty/internal/intelligence"
	"github.com/alexanderramin/marty/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type stubChat struct {
	reply intelligence.Reply
	err   error
	seen  []string
}

func (s *stubChat) Think(_ context.Context, text string) (intelligence.Reply, error) {
	s.seen = append(s.seen, text)
	return s.reply, s.err
}

type stubTools struct {
	calls []intelligence.ToolCall
}

func (s *stubTools) Dispatch(_ context.Context, call intelligence.ToolCall) []app.Message {
	s.calls = append(s.calls, call)
	return []app.Message{app.Say("Done.")}
}

type emptyCalendar struct{}

func (emptyCalendar) ListBusy(context.Context, time.Time, time.Time) ([]domain.BusyInterval, error) {
	return nil, nil
}

func (emptyCalendar) InsertEvent(context.Context, domain.NewEvent) (string, error) {
	return "id", nil
}

func newPlanner() *conversation.Controller {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	return conversation.NewController(intelligence.KeywordClassifier{}, emptyCalendar{}, conversation.DefaultSettings(),
		conversation.WithClock(func() time.Time { return now }))
}

func texts(turn Turn) []string {
	var out []string
	for _, m := range turn.Messages {
		out = append(out, m.Text)
	}
	return out
}

func TestRespond_Exit(t *testing.T) {
	a := New(newPlanner(), nil, &stubTools{}, zaptest.NewLogger(t))

	for _, cmd := range []string{"exit", "QUIT", "  Exit  "} {
		turn := a.Respond(context.Background(), cmd)
		assert.True(t, turn.Exit, cmd)
		assert.Equal(t, []string{"Leaving already? Fine."}, texts(turn))
	}
}

func TestRespond_Blank(t *testing.T) {
	chat := &stubChat{}
	a := New(newPlanner(), chat, &stubTools{}, nil)

	turn := a.Respond(context.Background(), "   ")
	assert.Empty(t, turn.Messages)
	assert.False(t, turn.Exit)
	assert.Empty(t, chat.seen)
}

func TestRespond_PlannerFirst(t *testing.T) {
	chat := &stubChat{reply: intelligence.Reply{Text: "chatting"}}
	a := New(newPlanner(), chat, &stubTools{}, nil)

	turn := a.Respond(context.Background(), "I have an exam coming up")
	require.NotEmpty(t, turn.Messages)
	assert.Equal(t, "Roughly how many hours do you think it will take?", texts(turn)[len(turn.Messages)-1])
	assert.Empty(t, chat.seen, "planner input must not reach the chat model")

	turn = a.Respond(context.Background(), "tell me a joke")
	assert.Contains(t, texts(turn)[0], "I need a number")
	assert.Empty(t, chat.seen, "an active session keeps the line")
}

func TestRespond_ChatProse(t *testing.T) {
	chat := &stubChat{reply: intelligence.Reply{Text: "Hello there."}}
	a := New(newPlanner(), chat, &stubTools{}, nil)

	turn := a.Respond(context.Background(), "hi")
	assert.Equal(t, []string{"Hello there."}, texts(turn))
	assert.True(t, turn.Messages[0].Markdown)
	assert.Equal(t, []string{"hi"}, chat.seen)
}

func TestRespond_ToolReply(t *testing.T) {
	chat := &stubChat{reply: intelligence.Reply{Tool: intelligence.SearchWeb{Query: "go"}}}
	tools := &stubTools{}
	a := New(newPlanner(), chat, tools, nil)

	turn := a.Respond(context.Background(), "search for go")
	assert.Equal(t, []string{"Done."}, texts(turn))
	require.Len(t, tools.calls, 1)
	assert.Equal(t, intelligence.SearchWeb{Query: "go"}, tools.calls[0])
}

func TestRespond_ChatError(t *testing.T) {
	chat := &stubChat{err: errors.Join(intelligence.ErrModelUnreachable, llm.ErrUnavailable)}
	a := New(newPlanner(), chat, &stubTools{}, nil)

	turn := a.Respond(context.Background(), "hi")
	require.Len(t, turn.Messages, 1)
	assert.Equal(t, app.KindError, turn.Messages[0].Kind)
	assert.False(t, turn.Exit)
}

func TestRespond_ChatDisabled(t *testing.T) {
	a := New(newPlanner(), nil, &stubTools{}, nil)

	assert.False(t, a.ChatEnabled())
	turn := a.Respond(context.Background(), "hi")
	assert.Equal(t, []string{chatOffNotice}, texts(turn))
}
