package scheduler

import (
	"strings"
	"time"
)

// DefaultDeadlineSpan is used for "next week" and for any phrase that is
// not recognised.
const DefaultDeadlineSpan = 7 * 24 * time.Hour

// ResolveDeadline maps a deadline phrase to 23:59:00 on the resolved day,
// in now's location. Recognised phrases, in priority order:
//
//	"next week"             now + 7 days
//	"next tuesday", "tuesday"  first Tuesday strictly after today
//
// Anything else falls back to now + 7 days.
func ResolveDeadline(phrase string, now time.Time) time.Time {
	p := strings.ToLower(strings.Join(strings.Fields(phrase), " "))

	var day time.Time
	switch {
	case strings.Contains(p, "next week"):
		day = now.AddDate(0, 0, 7)
	case strings.Contains(p, "tuesday"):
		day = nextWeekday(now, time.Tuesday)
	default:
		day = now.AddDate(0, 0, 7)
	}
	return endOfDay(day)
}

// nextWeekday returns the next occurrence of wd strictly after now's date.
// If today is wd the result is a week out.
func nextWeekday(now time.Time, wd time.Weekday) time.Time {
	ahead := (int(wd) - int(now.Weekday()) + 7) % 7
	if ahead == 0 {
		ahead = 7
	}
	return now.AddDate(0, 0, ahead)
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 0, 0, t.Location())
}
