package domain

import (
	"fmt"
	"time"
)

// WorkWindow is the daily clock-time range eligible for work blocks,
// expressed as whole hours in local time.
type WorkWindow struct {
	StartHour int
	EndHour   int
}

// DefaultWorkWindow is 17:00-21:00.
var DefaultWorkWindow = WorkWindow{StartHour: 17, EndHour: 21}

// Validate checks the window bounds.
func (w WorkWindow) Validate() error {
	if w.StartHour < 0 || w.StartHour > 23 {
		return fmt.Errorf("window start hour %d out of range 0-23", w.StartHour)
	}
	if w.EndHour < 1 || w.EndHour > 24 {
		return fmt.Errorf("window end hour %d out of range 1-24", w.EndHour)
	}
	if w.StartHour >= w.EndHour {
		return fmt.Errorf("window start hour %d must be before end hour %d", w.StartHour, w.EndHour)
	}
	return nil
}

// Length returns the window's daily duration.
func (w WorkWindow) Length() time.Duration {
	return time.Duration(w.EndHour-w.StartHour) * time.Hour
}

// On returns the window as an interval on the calendar day of t, in t's location.
func (w WorkWindow) On(t time.Time) Interval {
	y, m, d := t.Date()
	loc := t.Location()
	return Interval{
		Start: time.Date(y, m, d, w.StartHour, 0, 0, 0, loc),
		End:   time.Date(y, m, d, w.EndHour, 0, 0, 0, loc),
	}
}

func (w WorkWindow) String() string {
	return fmt.Sprintf("%02d:00-%02d:00", w.StartHour, w.EndHour)
}
