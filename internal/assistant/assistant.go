// Package assistant routes one line of user input to the planner, the chat
// model or a tool, and collects what MARTY says back.
package assistant

import (
	"context"
	"strings"

	"github.com/alexanderramin/marty/internal/app"
	"github.com/alexanderramin/marty/internal/intelligence"
	"go.uber.org/zap"
)

// Planner gets first refusal on every line.
type Planner interface {
	Handle(ctx context.Context, input string) ([]app.Message, bool)
}

// ToolRunner executes a tool request from the chat model.
type ToolRunner interface {
	Dispatch(ctx context.Context, call intelligence.ToolCall) []app.Message
}

// Turn is MARTY's response to one input line.
type Turn struct {
	Messages []app.Message
	Exit     bool
}

const (
	farewell      = "Leaving already? Fine."
	chatOffNotice = "I can only help plan work right now. Set llm.enabled to true (or MARTY_LLM_ENABLED=true) to chat."
)

var exitCommands = map[string]bool{"exit": true, "quit": true}

// Assistant is not safe for concurrent use; callers feed it one line at a
// time.
type Assistant struct {
	planner Planner
	chat    intelligence.ChatService
	tools   ToolRunner
	log     *zap.Logger
}

// New wires an Assistant. chat may be nil when no language model is
// configured.
func New(planner Planner, chat intelligence.ChatService, tools ToolRunner, log *zap.Logger) *Assistant {
	if log == nil {
		log = zap.NewNop()
	}
	return &Assistant{planner: planner, chat: chat, tools: tools, log: log}
}

// ChatEnabled reports whether free-form chat is available.
func (a *Assistant) ChatEnabled() bool {
	return a.chat != nil
}

func (a *Assistant) Respond(ctx context.Context, line string) Turn {
	input := strings.TrimSpace(line)
	if input == "" {
		return Turn{}
	}
	if exitCommands[strings.ToLower(input)] {
		return Turn{Messages: []app.Message{app.Say(farewell)}, Exit: true}
	}

	if msgs, handled := a.planner.Handle(ctx, input); handled {
		return Turn{Messages: msgs}
	}

	if a.chat == nil {
		return Turn{Messages: []app.Message{app.Say(chatOffNotice)}}
	}

	reply, err := a.chat.Think(ctx, input)
	if err != nil {
		a.log.Warn("chat failed", zap.Error(err))
		return Turn{Messages: []app.Message{app.Error("Sorry, I %v.", err)}}
	}
	if reply.IsTool() {
		a.log.Debug("tool requested", zap.String("tool", reply.Tool.ToolName()))
		return Turn{Messages: a.tools.Dispatch(ctx, reply.Tool)}
	}
	if reply.Text == "" {
		return Turn{Messages: []app.Message{app.Say("...")}}
	}
	return Turn{Messages: []app.Message{app.Chat(reply.Text)}}
}
