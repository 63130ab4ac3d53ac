package app

import (
	"context"
	"time"

	"github.com/alexanderramin/marty/internal/domain"
)

// ConfirmationClassifier maps a free-text reply to CONFIRM, DECLINE or
// UNKNOWN. Implementations never fail; internal errors yield Unknown.
type ConfirmationClassifier interface {
	Classify(ctx context.Context, text string) domain.Confirmation
}

// CalendarGateway is the read/write surface the planner needs from a calendar.
type CalendarGateway interface {
	// ListBusy returns every commitment intersecting [start, end).
	ListBusy(ctx context.Context, start, end time.Time) ([]domain.BusyInterval, error)

	// InsertEvent creates one event and returns its id. Calls are not
	// idempotent: each call may create a new event.
	InsertEvent(ctx context.Context, ev domain.NewEvent) (string, error)
}

// AgendaReader lists full events for display.
type AgendaReader interface {
	ListEvents(ctx context.Context, start, end time.Time) ([]domain.Event, error)
}
