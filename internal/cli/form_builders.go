package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/marty/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Accepted layouts for times typed on the command line or into forms.
// RFC3339 keeps its own offset; the others are read in local time.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

const dateLayout = "2006-01-02"

// martyHuhTheme styles forms with the formatter palette.
func martyHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// parseLocalTime reads s with the first layout that fits.
func parseLocalTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot read %q as a time, use YYYY-MM-DD HH:MM", s)
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot read %q as a date, use YYYY-MM-DD", s)
	}
	return t, nil
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateTime(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("time is required")
	}
	_, err := parseLocalTime(s, time.Local)
	return err
}

// timeInput returns a huh.Input for a required date and time.
func timeInput(title, placeholder string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(value).
		Validate(validateTime)
}

// eventFields is what `calendar add` collects.
type eventFields struct {
	Title       string
	Start       string
	End         string
	Description string
}

func (f eventFields) complete() bool {
	return strings.TrimSpace(f.Title) != "" && f.Start != "" && f.End != ""
}

// eventForm asks for the fields not already given as flags. now seeds the
// placeholders with the next full hour.
func eventForm(f *eventFields, now time.Time) *huh.Form {
	next := now.Truncate(time.Hour).Add(time.Hour)
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("Dentist").
				Value(&f.Title).
				Validate(validateRequired("title")),
			timeInput("Start (YYYY-MM-DD HH:MM)", next.Format("2006-01-02 15:04"), &f.Start),
			timeInput("End (YYYY-MM-DD HH:MM)", next.Add(time.Hour).Format("2006-01-02 15:04"), &f.End),
			huh.NewInput().
				Title("Description (optional)").
				Value(&f.Description),
		),
	).WithTheme(martyHuhTheme()).WithShowHelp(false)
}
