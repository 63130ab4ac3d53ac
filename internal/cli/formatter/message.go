package formatter

import (
	"strings"

	"github.com/alexanderramin/marty/internal/app"
)

const (
	SpeakerName = "MARTY"
	UserName    = "You"
)

// SpeakerPrefix is the plain "MARTY: " label used in line mode.
func SpeakerPrefix() string {
	return SpeakerName + ": "
}

// FormatMessage renders one assistant message with a styled speaker label.
// Continuation lines are indented under the label.
func FormatMessage(m app.Message) string {
	return labelled(KindStyle(m.Kind).Render(indent(m.Text)))
}

// FormatStyled labels text that already carries its own styling, such as
// rendered markdown.
func FormatStyled(text string) string {
	return labelled(indent(text))
}

func labelled(body string) string {
	return StylePurple.Render(SpeakerName) + Dim(": ") + body
}

func indent(text string) string {
	pad := strings.Repeat(" ", len(SpeakerName)+2)
	return strings.ReplaceAll(text, "\n", "\n"+pad)
}

// FormatUserLine echoes what the user typed.
func FormatUserLine(text string) string {
	return Dim(UserName+": ") + text
}

// PlainMessage renders a message without styling, for non-terminal output.
// Warnings and errors keep a marker so they stand out in logs and pipes.
func PlainMessage(m app.Message) string {
	switch m.Kind {
	case app.KindWarn:
		return "(!) " + m.Text
	case app.KindError:
		return "(x) " + m.Text
	default:
		return m.Text
	}
}

// FormatWelcome is shown when a chat starts.
func FormatWelcome(chatEnabled bool) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(StylePurple.Render("  marty") + Dim("  Mostly Accurate, Reasonably Trustworthy, Yet.") + "\n")
	b.WriteString(Dim("  ─────────────────────────────────────────────") + "\n")
	b.WriteString(Dim("  Mention a deadline, exam or project and I'll find time for it.") + "\n")
	if !chatEnabled {
		b.WriteString(StyleYellow.Render("  Chat is off: no language model configured.") + "\n")
	}
	b.WriteString(Dim("  Type 'exit' to leave.") + "\n")
	return b.String()
}
