package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/marty/internal/domain"
)

// EventRepo persists calendar events. Ranges are half-open: an event
// overlaps [start, end) when it starts before end and ends after start.
type EventRepo interface {
	Create(ctx context.Context, e *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	ListOverlapping(ctx context.Context, start, end time.Time) ([]*domain.Event, error)
	ListAll(ctx context.Context) ([]*domain.Event, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error
}
