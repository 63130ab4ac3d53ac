package cli

import (
	"context"
	"testing"

	"github.com/alexanderramin/marty/internal/app"
	"github.com/alexanderramin/marty/internal/assistant"
	"github.com/alexanderramin/marty/internal/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatDriver(t *testing.T, resp Responder, hist *history) *teatest.Driver {
	t.Helper()
	d := teatest.New(t, newChatModel(context.Background(), resp, false, hist), teatest.WithSize(100, 40))
	d.DrainInit()
	return d
}

func chatOf(t *testing.T, d *teatest.Driver) *chatModel {
	t.Helper()
	m, ok := d.Model.(*chatModel)
	require.True(t, ok)
	return m
}

func TestChatModel_WelcomeMentionsChatOff(t *testing.T) {
	d := newChatDriver(t, &scriptedResponder{}, nil)
	assert.Contains(t, d.View(), "Chat is off")
	assert.Contains(t, d.View(), "You: ")
}

func TestChatModel_SubmitShowsReply(t *testing.T) {
	resp := &scriptedResponder{}
	d := newChatDriver(t, resp, nil)

	d.Submit("hello")

	view := d.View()
	assert.Contains(t, view, "You: hello")
	assert.Contains(t, view, "echo hello")
	assert.Equal(t, []string{"hello"}, resp.seen)
	assert.False(t, chatOf(t, d).busy)
	assert.Empty(t, chatOf(t, d).input.Value())
}

func TestChatModel_BlankLineIsIgnored(t *testing.T) {
	resp := &scriptedResponder{}
	d := newChatDriver(t, resp, nil)

	d.Submit("   ")
	assert.Empty(t, resp.seen)
}

func TestChatModel_ExitTurnQuits(t *testing.T) {
	resp := &scriptedResponder{replies: map[string]assistant.Turn{
		"exit": {Messages: []app.Message{app.Say("Leaving already? Fine.")}, Exit: true},
	}}
	d := newChatDriver(t, resp, nil)

	d.Submit("exit")

	assert.True(t, d.Quitting)
	assert.Contains(t, d.View(), "Leaving already? Fine.")
	assert.NotContains(t, d.View(), "thinking")
}

func TestChatModel_CtrlCQuits(t *testing.T) {
	d := newChatDriver(t, &scriptedResponder{}, nil)
	d.PressCtrlC()
	assert.True(t, d.Quitting)
}

func TestChatModel_HistoryRecall(t *testing.T) {
	d := newChatDriver(t, &scriptedResponder{}, nil)
	d.Submit("one")
	d.Submit("two")
	d.Type("dra")

	m := chatOf(t, d)
	d.PressUp()
	assert.Equal(t, "two", m.input.Value())
	d.PressUp()
	assert.Equal(t, "one", m.input.Value())
	d.PressUp()
	assert.Equal(t, "one", m.input.Value(), "stays on the oldest entry")
	d.PressDown()
	assert.Equal(t, "two", m.input.Value())
	d.PressDown()
	assert.Equal(t, "dra", m.input.Value(), "restores the draft")
}

func TestChatModel_LoadsSavedHistory(t *testing.T) {
	hist := loadHistory("")
	hist.Add("from last time")
	d := newChatDriver(t, &scriptedResponder{}, hist)

	d.PressUp()
	assert.Equal(t, "from last time", chatOf(t, d).input.Value())
}

func TestChatModel_RendersChatReplies(t *testing.T) {
	resp := &scriptedResponder{replies: map[string]assistant.Turn{
		"joke": {Messages: []app.Message{app.Chat("Why did the calendar *quit*?")}},
	}}
	d := newChatDriver(t, resp, nil)

	d.Submit("joke")
	assert.Contains(t, d.View(), "calendar")
	assert.Contains(t, d.View(), "MARTY")
}
