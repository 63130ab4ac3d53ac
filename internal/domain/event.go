package domain

import "time"

// Event is a stored calendar entry.
type Event struct {
	ID          string
	Title       string
	Description string
	StartAt     time.Time
	EndAt       time.Time
	CreatedAt   time.Time
}

// Interval returns the event's time range.
func (e Event) Interval() Interval {
	return Interval{Start: e.StartAt, End: e.EndAt}
}

// NewEvent carries the fields needed to create a calendar entry.
type NewEvent struct {
	Title       string
	Description string
	Start       time.Time
	End         time.Time
}
