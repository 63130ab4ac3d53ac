package cli

import (
	"context"
	"strings"

	"github.com/alexanderramin/marty/internal/app"
	"github.com/alexanderramin/marty/internal/assistant"
	"github.com/alexanderramin/marty/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// turnDoneMsg carries the assistant's answer back into the update loop.
type turnDoneMsg struct {
	turn assistant.Turn
}

// chatModel is the interactive chat. One turn runs at a time; input is
// ignored until it finishes.
type chatModel struct {
	ctx       context.Context
	responder Responder

	input   textinput.Model
	spinner spinner.Model
	md      *formatter.Markdown
	width   int

	lines   []string
	history *history
	// histPos indexes history while recalling; Len() means a fresh line.
	histPos int
	draft   string

	busy     bool
	quitting bool
}

func newChatModel(ctx context.Context, responder Responder, chatEnabled bool, hist *history) *chatModel {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.CharLimit = 1000

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StylePurple

	if hist == nil {
		hist = &history{}
	}

	return &chatModel{
		ctx:       ctx,
		responder: responder,
		input:     ti,
		spinner:   sp,
		md:        formatter.NewMarkdown(80),
		width:     80,
		lines:     []string{formatter.FormatWelcome(chatEnabled)},
		history:   hist,
		histPos:   hist.Len(),
	}
}

func (m *chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.input.Width = max(msg.Width-len(formatter.UserName)-3, 10)
		if wrap := msg.Width - len(formatter.SpeakerName) - 4; wrap > 20 && msg.Width != m.width {
			m.width = msg.Width
			m.md = formatter.NewMarkdown(wrap)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyUp:
			m.recall(-1)
			return m, nil
		case tea.KeyDown:
			m.recall(1)
			return m, nil
		case tea.KeyEnter:
			return m.submit()
		}

	case turnDoneMsg:
		m.busy = false
		for _, reply := range msg.turn.Messages {
			m.lines = append(m.lines, m.render(reply))
		}
		if msg.turn.Exit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *chatModel) submit() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	line := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	if line == "" {
		return m, nil
	}

	m.history.Add(line)
	m.histPos = m.history.Len()
	m.draft = ""
	m.lines = append(m.lines, formatter.FormatUserLine(line))
	m.busy = true

	ctx, responder := m.ctx, m.responder
	respond := func() tea.Msg {
		return turnDoneMsg{turn: responder.Respond(ctx, line)}
	}
	return m, tea.Batch(m.spinner.Tick, respond)
}

// recall moves through history; dir is -1 for older and 1 for newer. The
// line being typed is kept as a draft and restored past the newest entry.
func (m *chatModel) recall(dir int) {
	if m.busy || m.history.Len() == 0 {
		return
	}
	if m.histPos == m.history.Len() && dir < 0 {
		m.draft = m.input.Value()
	}
	pos := m.histPos + dir
	if pos < 0 || pos > m.history.Len() {
		return
	}
	m.histPos = pos
	if pos == m.history.Len() {
		m.input.SetValue(m.draft)
	} else {
		m.input.SetValue(m.history.At(pos))
	}
	m.input.CursorEnd()
}

func (m *chatModel) render(msg app.Message) string {
	if msg.Markdown {
		return formatter.FormatStyled(m.md.Render(msg.Text))
	}
	return formatter.FormatMessage(msg)
}

func (m *chatModel) View() string {
	var b strings.Builder
	for _, line := range m.lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if m.quitting {
		return b.String()
	}
	if m.busy {
		b.WriteString(m.spinner.View() + " " + formatter.Dim("thinking..."))
		return b.String()
	}
	b.WriteString(formatter.Dim(formatter.UserName+": ") + m.input.View())
	return b.String()
}
