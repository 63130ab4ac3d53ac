// Package tools executes the tool requests the chat model makes.
package tools

import (
	"context"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/marty/internal/app"
	"github.com/alexanderramin/marty/internal/intelligence"
	"go.uber.org/zap"
)

// DefaultAllowedApps maps the names the model may use to application names.
var DefaultAllowedApps = map[string]string{
	"spotify": "Spotify",
	"safari":  "Safari",
	"notes":   "Notes",
	"chrome":  "Google Chrome",
}

const searchURL = "https://www.google.com/search?q="

// Dispatcher runs a ToolCall and describes the outcome as messages.
type Dispatcher struct {
	launcher Launcher
	agenda   app.AgendaReader
	allowed  map[string]string
	now      func() time.Time
	log      *zap.Logger
}

type Option func(*Dispatcher)

func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) { d.now = now }
}

func WithLogger(log *zap.Logger) Option {
	return func(d *Dispatcher) { d.log = log }
}

// NewDispatcher copies allowed with lower-cased keys. A nil map means
// DefaultAllowedApps.
func NewDispatcher(launcher Launcher, agenda app.AgendaReader, allowed map[string]string, opts ...Option) *Dispatcher {
	if allowed == nil {
		allowed = DefaultAllowedApps
	}
	apps := make(map[string]string, len(allowed))
	for k, v := range allowed {
		apps[strings.ToLower(k)] = v
	}
	d := &Dispatcher{
		launcher: launcher,
		agenda:   agenda,
		allowed:  apps,
		now:      time.Now,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// AllowedApps returns the short names the dispatcher will open, sorted.
func (d *Dispatcher) AllowedApps() []string {
	names := make([]string, 0, len(d.allowed))
	for k := range d.allowed {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Dispatch never fails; problems are reported as warnings.
func (d *Dispatcher) Dispatch(ctx context.Context, call intelligence.ToolCall) []app.Message {
	switch c := call.(type) {
	case intelligence.OpenApp:
		return d.openApp(ctx, c)
	case intelligence.SearchWeb:
		return d.searchWeb(ctx, c)
	case intelligence.TodayEvents:
		return d.todayEvents(ctx)
	default:
		return []app.Message{app.Say("I don't recognize that tool.")}
	}
}

func (d *Dispatcher) openApp(ctx context.Context, c intelligence.OpenApp) []app.Message {
	name, ok := d.allowed[strings.ToLower(strings.TrimSpace(c.AppName))]
	if !ok {
		d.log.Info("app not allowed", zap.String("app", c.AppName))
		return []app.Message{app.Say("I'm not allowed to open that app.")}
	}
	if err := d.launcher.OpenApp(ctx, name); err != nil {
		d.log.Warn("open app failed", zap.String("app", name), zap.Error(err))
		return []app.Message{app.Warn("I couldn't open %s: %v", name, err)}
	}
	return []app.Message{app.Say("Opening %s.", name)}
}

func (d *Dispatcher) searchWeb(ctx context.Context, c intelligence.SearchWeb) []app.Message {
	query := strings.TrimSpace(c.Query)
	if query == "" {
		return []app.Message{app.Prompt("What should I search for?")}
	}
	if err := d.launcher.OpenURL(ctx, SearchURL(query)); err != nil {
		d.log.Warn("web search failed", zap.String("query", query), zap.Error(err))
		return []app.Message{app.Warn("I couldn't open the browser: %v", err)}
	}
	return []app.Message{app.Say("Done.")}
}

func (d *Dispatcher) todayEvents(ctx context.Context) []app.Message {
	start, end := Today(d.now())
	events, err := d.agenda.ListEvents(ctx, start, end)
	if err != nil {
		d.log.Warn("listing today's events failed", zap.Error(err))
		return []app.Message{app.Warn("I couldn't read your calendar: %v", err)}
	}
	if len(events) == 0 {
		return []app.Message{app.Say("Nothing on your calendar today.")}
	}

	msgs := []app.Message{app.Say("Here are today's events:")}
	for _, e := range events {
		msgs = append(msgs, app.Say("%s–%s  %s",
			e.StartAt.In(start.Location()).Format("15:04"),
			e.EndAt.In(start.Location()).Format("15:04"),
			e.Title))
	}
	return msgs
}

// SearchURL builds the web search URL for query.
func SearchURL(query string) string {
	return searchURL + url.QueryEscape(query)
}

// Today returns [local midnight, next local midnight) for now's day.
func Today(now time.Time) (time.Time, time.Time) {
	y, m, d := now.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return start, time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
}
