package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/marty/internal/domain"
)

var testEventCounter atomic.Int64

// Monday is a fixed reference instant used across tests: Monday 2025-03-10
// at noon UTC.
var Monday = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

// At returns Monday shifted by days, at the given hour and minute in UTC.
func At(days, hour, minute int) time.Time {
	return time.Date(2025, 3, 10+days, hour, minute, 0, 0, time.UTC)
}

type EventOption func(*domain.Event)

func WithDescription(d string) EventOption {
	return func(e *domain.Event) {
		e.Description = d
	}
}

func WithEventID(id string) EventOption {
	return func(e *domain.Event) {
		e.ID = id
	}
}

// NewTestEvent builds an event spanning [start, end). The ID is left for the
// repository to assign unless WithEventID is given.
func NewTestEvent(title string, start, end time.Time, opts ...EventOption) *domain.Event {
	if title == "" {
		title = fmt.Sprintf("Event %d", testEventCounter.Add(1))
	}
	e := &domain.Event{
		Title:   title,
		StartAt: start,
		EndAt:   end,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
