package formatter

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Markdown renders chat replies, which models often write in markdown.
type Markdown struct {
	r *glamour.TermRenderer
}

// NewMarkdown wraps at width columns. It falls back to plain text if the
// renderer cannot be built.
func NewMarkdown(width int) *Markdown {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return &Markdown{}
	}
	return &Markdown{r: r}
}

// Render returns styled text without glamour's surrounding blank lines.
func (m *Markdown) Render(text string) string {
	if m == nil || m.r == nil {
		return text
	}
	out, err := m.r.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}
