// Package calendar provides the calendar backend the planner reads busy
// time from and writes work sessions to. LocalCalendar keeps events in the
// SQLite store.
package calendar

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/marty/internal/app"
	"github.com/alexanderramin/marty/internal/db"
	"github.com/alexanderramin/marty/internal/domain"
	"github.com/alexanderramin/marty/internal/repository"
)

var (
	ErrInvalidRange = errors.New("invalid time range")
	ErrInvalidEvent = errors.New("invalid event")
)

// DefaultTimeout bounds every calendar call.
const DefaultTimeout = 5 * time.Second

// Gateway and Agenda are the planner's and the tools' views of a calendar.
type (
	Gateway = app.CalendarGateway
	Agenda  = app.AgendaReader
)

var (
	_ Gateway = (*LocalCalendar)(nil)
	_ Agenda  = (*LocalCalendar)(nil)
)

// LocalCalendar is a calendar backed by the calendar_events table.
type LocalCalendar struct {
	events  repository.EventRepo
	uow     db.UnitOfWork
	timeout time.Duration
}

type Option func(*LocalCalendar)

// WithTimeout overrides DefaultTimeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *LocalCalendar) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithUnitOfWork replaces the transaction runner used by Import.
func WithUnitOfWork(uow db.UnitOfWork) Option {
	return func(c *LocalCalendar) {
		c.uow = uow
	}
}

func NewLocal(database *sql.DB, opts ...Option) *LocalCalendar {
	c := &LocalCalendar{
		events:  repository.NewSQLiteEventRepo(database),
		uow:     db.NewSQLiteUnitOfWork(database),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListBusy returns the intervals of every event intersecting [start, end).
func (c *LocalCalendar) ListBusy(ctx context.Context, start, end time.Time) ([]domain.BusyInterval, error) {
	events, err := c.ListEvents(ctx, start, end)
	if err != nil {
		return nil, err
	}
	busy := make([]domain.BusyInterval, 0, len(events))
	for _, e := range events {
		busy = append(busy, domain.NewBusyInterval(e.StartAt, e.EndAt))
	}
	return busy, nil
}

// ListEvents returns events intersecting [start, end) ordered by start.
func (c *LocalCalendar) ListEvents(ctx context.Context, start, end time.Time) ([]domain.Event, error) {
	if !start.Before(end) {
		return nil, fmt.Errorf("listing %s to %s: %w", start.Format(time.RFC3339), end.Format(time.RFC3339), ErrInvalidRange)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	rows, err := c.events.ListOverlapping(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("reading calendar: %w", err)
	}
	return derefEvents(rows), nil
}

// InsertEvent stores one event and returns its ID.
func (c *LocalCalendar) InsertEvent(ctx context.Context, ev domain.NewEvent) (string, error) {
	if err := validate(ev); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	e := toEvent(ev)
	if err := c.events.Create(ctx, e); err != nil {
		return "", fmt.Errorf("writing calendar: %w", err)
	}
	return e.ID, nil
}

// All returns every stored event ordered by start.
func (c *LocalCalendar) All(ctx context.Context) ([]domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	rows, err := c.events.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading calendar: %w", err)
	}
	return derefEvents(rows), nil
}

// Delete removes an event. A missing ID yields repository.ErrNotFound.
func (c *LocalCalendar) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.events.Delete(ctx, id)
}

func (c *LocalCalendar) Count(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.events.Count(ctx)
}

func validate(ev domain.NewEvent) error {
	if strings.TrimSpace(ev.Title) == "" {
		return fmt.Errorf("title is required: %w", ErrInvalidEvent)
	}
	if ev.Start.IsZero() || ev.End.IsZero() {
		return fmt.Errorf("start and end are required: %w", ErrInvalidEvent)
	}
	// Events are stored at second precision.
	if !ev.Start.Truncate(time.Second).Before(ev.End.Truncate(time.Second)) {
		return fmt.Errorf("start must be before end: %w", ErrInvalidEvent)
	}
	return nil
}

func toEvent(ev domain.NewEvent) *domain.Event {
	return &domain.Event{
		Title:       strings.TrimSpace(ev.Title),
		Description: ev.Description,
		StartAt:     ev.Start,
		EndAt:       ev.End,
	}
}

func derefEvents(rows []*domain.Event) []domain.Event {
	out := make([]domain.Event, 0, len(rows))
	for _, e := range rows {
		out = append(out, *e)
	}
	return out
}
