package tools

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/marty/internal/app"
	"github.com/alexanderramin/marty/internal/domain"
	"github.com/alexanderramin/marty/internal/intelligence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLauncher struct {
	apps []string
	urls []string
	err  error
}

func (f *fakeLauncher) OpenApp(_ context.Context, name string) error {
	if f.err != nil {
		return f.err
	}
	f.apps = append(f.apps, name)
	return nil
}

func (f *fakeLauncher) OpenURL(_ context.Context, u string) error {
	if f.err != nil {
		return f.err
	}
	f.urls = append(f.urls, u)
	return nil
}

type fakeAgenda struct {
	events     []domain.Event
	err        error
	start, end time.Time
}

func (f *fakeAgenda) ListEvents(_ context.Context, start, end time.Time) ([]domain.Event, error) {
	f.start, f.end = start, end
	return f.events, f.err
}

var noon = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newDispatcher(l *fakeLauncher, a *fakeAgenda) *Dispatcher {
	return NewDispatcher(l, a, nil, WithClock(func() time.Time { return noon }))
}

func texts(msgs []app.Message) []string {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, m.Text)
	}
	return out
}

func TestDispatch_OpenApp(t *testing.T) {
	l := &fakeLauncher{}
	d := newDispatcher(l, &fakeAgenda{})

	msgs := d.Dispatch(context.Background(), intelligence.OpenApp{AppName: "Chrome"})

	assert.Equal(t, []string{"Opening Google Chrome."}, texts(msgs))
	assert.Equal(t, []string{"Google Chrome"}, l.apps)
}

func TestDispatch_OpenApp_NotAllowed(t *testing.T) {
	for _, name := range []string{"Terminal", ""} {
		l := &fakeLauncher{}
		d := newDispatcher(l, &fakeAgenda{})

		msgs := d.Dispatch(context.Background(), intelligence.OpenApp{AppName: name})

		assert.Equal(t, []string{"I'm not allowed to open that app."}, texts(msgs))
		assert.Empty(t, l.apps)
	}
}

func TestDispatch_OpenApp_LaunchFailure(t *testing.T) {
	d := newDispatcher(&fakeLauncher{err: errors.New("exec: not found")}, &fakeAgenda{})

	msgs := d.Dispatch(context.Background(), intelligence.OpenApp{AppName: "notes"})

	require.Len(t, msgs, 1)
	assert.Equal(t, app.KindWarn, msgs[0].Kind)
	assert.Contains(t, msgs[0].Text, "Notes")
}

func TestDispatch_CustomAllowList(t *testing.T) {
	l := &fakeLauncher{}
	d := NewDispatcher(l, &fakeAgenda{}, map[string]string{"Obsidian": "Obsidian"})

	assert.Equal(t, []string{"obsidian"}, d.AllowedApps())
	assert.Equal(t, []string{"Opening Obsidian."}, texts(d.Dispatch(context.Background(), intelligence.OpenApp{AppName: "obsidian"})))
	assert.Equal(t, []string{"I'm not allowed to open that app."}, texts(d.Dispatch(context.Background(), intelligence.OpenApp{AppName: "spotify"})))
}

func TestDispatch_SearchWeb(t *testing.T) {
	l := &fakeLauncher{}
	d := newDispatcher(l, &fakeAgenda{})

	msgs := d.Dispatch(context.Background(), intelligence.SearchWeb{Query: "go generics & you"})

	assert.Equal(t, []string{"Done."}, texts(msgs))
	assert.Equal(t, []string{"https://www.google.com/search?q=go+generics+%26+you"}, l.urls)
}

func TestDispatch_SearchWeb_EmptyQuery(t *testing.T) {
	l := &fakeLauncher{}
	d := newDispatcher(l, &fakeAgenda{})

	msgs := d.Dispatch(context.Background(), intelligence.SearchWeb{Query: "  "})

	assert.Equal(t, []string{"What should I search for?"}, texts(msgs))
	assert.Empty(t, l.urls)
}

func TestDispatch_TodayEvents(t *testing.T) {
	a := &fakeAgenda{events: []domain.Event{
		{Title: "Standup", StartAt: noon.Add(-3 * time.Hour), EndAt: noon.Add(-150 * time.Minute)},
		{Title: "Work session", StartAt: noon.Add(5 * time.Hour), EndAt: noon.Add(7 * time.Hour)},
	}}
	d := newDispatcher(&fakeLauncher{}, a)

	msgs := d.Dispatch(context.Background(), intelligence.TodayEvents{})

	assert.Equal(t, []string{
		"Here are today's events:",
		"09:00–09:30  Standup",
		"17:00–19:00  Work session",
	}, texts(msgs))
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), a.start)
	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), a.end)
}

func TestDispatch_TodayEvents_Empty(t *testing.T) {
	d := newDispatcher(&fakeLauncher{}, &fakeAgenda{})

	assert.Equal(t, []string{"Nothing on your calendar today."}, texts(d.Dispatch(context.Background(), intelligence.TodayEvents{})))
}

func TestDispatch_TodayEvents_Error(t *testing.T) {
	d := newDispatcher(&fakeLauncher{}, &fakeAgenda{err: errors.New("db locked")})

	msgs := d.Dispatch(context.Background(), intelligence.TodayEvents{})

	require.Len(t, msgs, 1)
	assert.Equal(t, app.KindWarn, msgs[0].Kind)
}

func TestDispatch_UnknownTool(t *testing.T) {
	d := newDispatcher(&fakeLauncher{}, &fakeAgenda{})

	msgs := d.Dispatch(context.Background(), intelligence.UnknownTool{Name: "send_email"})

	assert.Equal(t, []string{"I don't recognize that tool."}, texts(msgs))
}

func TestSystemLauncher_UnsupportedPlatform(t *testing.T) {
	err := SystemLauncher{GOOS: "plan9"}.OpenApp(context.Background(), "Notes")
	assert.Error(t, err)
}
