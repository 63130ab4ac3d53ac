package app

import "fmt"

// MessageKind tells the renderer how to present a Message.
type MessageKind string

const (
	KindSay    MessageKind = "say"
	KindPrompt MessageKind = "prompt"
	KindWarn   MessageKind = "warn"
	KindError  MessageKind = "error"
)

// Message is one line of assistant output.
type Message struct {
	Kind MessageKind
	Text string
	// Markdown marks free-form model output that a terminal may render as
	// markdown.
	Markdown bool
}

// Chat wraps a language-model reply.
func Chat(text string) Message {
	return Message{Kind: KindSay, Text: text, Markdown: true}
}

func Say(format string, a ...any) Message {
	return Message{Kind: KindSay, Text: fmt.Sprintf(format, a...)}
}

func Prompt(format string, a ...any) Message {
	return Message{Kind: KindPrompt, Text: fmt.Sprintf(format, a...)}
}

func Warn(format string, a ...any) Message {
	return Message{Kind: KindWarn, Text: fmt.Sprintf(format, a...)}
}

func Error(format string, a ...any) Message {
	return Message{Kind: KindError, Text: fmt.Sprintf(format, a...)}
}
