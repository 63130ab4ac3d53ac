package domain

import "time"

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Duration returns End - Start.
func (i Interval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Overlaps reports whether two half-open intervals share any instant.
// Touching endpoints do not overlap.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && o.Start.Before(i.End)
}

// Contains reports whether o lies entirely within i.
func (i Interval) Contains(o Interval) bool {
	return !o.Start.Before(i.Start) && !o.End.After(i.End)
}

// WorkBlock is a proposed contiguous range reserved for working on a task.
type WorkBlock struct {
	Interval
}

// NewWorkBlock builds a block starting at start and lasting d.
func NewWorkBlock(start time.Time, d time.Duration) WorkBlock {
	return WorkBlock{Interval{Start: start, End: start.Add(d)}}
}

// Hours returns the block length in fractional hours.
func (b WorkBlock) Hours() float64 {
	return b.Duration().Hours()
}

// BusyInterval is an existing calendar commitment. It is read-only input
// to the scheduler.
type BusyInterval struct {
	Interval
}

// NewBusyInterval builds a BusyInterval from its endpoints.
func NewBusyInterval(start, end time.Time) BusyInterval {
	return BusyInterval{Interval{Start: start, End: end}}
}

// AnyOverlap reports whether iv intersects any of the busy intervals.
func AnyOverlap(iv Interval, busy []BusyInterval) bool {
	for _, b := range busy {
		if iv.Overlaps(b.Interval) {
			return true
		}
	}
	return false
}
