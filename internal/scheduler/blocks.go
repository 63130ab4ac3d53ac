package scheduler

import (
	"math"
	"time"

	"github.com/alexanderramin/marty/internal/domain"
)

// DefaultBlockHours is the longest single work session.
const DefaultBlockHours = 2.0

// MaxRequiredHours is a year of round-the-clock work. No deadline the
// planner resolves can hold more.
const MaxRequiredHours = 366 * 24

// PlanRequest holds the inputs to PlanBlocks. Busy is never modified.
type PlanRequest struct {
	RequiredHours float64
	Deadline      time.Time
	Now           time.Time
	Busy          []domain.BusyInterval
	Window        domain.WorkWindow
	BlockHours    float64
}

// PlanBlocks greedily places work blocks between Now and Deadline.
//
// The cursor starts at Now rounded up to the hour and moves to the next
// window start. Each eligible day gets at most one block: any busy interval
// touching the day's window forfeits the whole day, otherwise the first
// sub-window of BlockHours that is free is taken. The last block shrinks to
// the remaining hours.
//
// The result is either empty (the hours cannot all be placed before the
// deadline) or a chronological list whose durations sum to RequiredHours.
func PlanBlocks(req PlanRequest) []domain.WorkBlock {
	remaining := hoursToDuration(req.RequiredHours)
	blockLen := hoursToDuration(req.BlockHours)
	if remaining <= 0 || blockLen <= 0 || req.Window.Validate() != nil {
		return nil
	}
	if blockLen > req.Window.Length() {
		return nil
	}

	var blocks []domain.WorkBlock
	cursor := firstWindowStart(ceilHour(req.Now), req.Window)

	for remaining > 0 && cursor.Before(req.Deadline) {
		window := req.Window.On(cursor)

		if domain.AnyOverlap(window, req.Busy) {
			cursor = nextDayStart(cursor, req.Window)
			continue
		}

		block, ok := firstFreeSlot(window, cursor, min(blockLen, remaining), blockLen, req)
		if ok {
			blocks = append(blocks, block)
			remaining -= block.Duration()
		}
		cursor = nextDayStart(cursor, req.Window)
	}

	if remaining > 0 {
		return nil
	}
	return blocks
}

// firstFreeSlot walks the window in steps of step, starting at from, and
// returns the first slot of length want that fits the window, ends by the
// deadline, and misses every busy interval.
func firstFreeSlot(window domain.Interval, from time.Time, want, step time.Duration, req PlanRequest) (domain.WorkBlock, bool) {
	for start := from; ; start = start.Add(step) {
		block := domain.NewWorkBlock(start, want)
		if block.End.After(window.End) || block.End.After(req.Deadline) {
			return domain.WorkBlock{}, false
		}
		if !domain.AnyOverlap(block.Interval, req.Busy) {
			return block, true
		}
	}
}

// ceilHour rounds t up to the next whole hour in its own location.
func ceilHour(t time.Time) time.Time {
	y, m, d := t.Date()
	floor := time.Date(y, m, d, t.Hour(), 0, 0, 0, t.Location())
	if floor.Equal(t) {
		return floor
	}
	return floor.Add(time.Hour)
}

// firstWindowStart moves t to the window start on its own day, or on the
// following day when t's hour is already past the start hour.
func firstWindowStart(t time.Time, w domain.WorkWindow) time.Time {
	if t.Hour() > w.StartHour {
		return nextDayStart(t, w)
	}
	return w.On(t).Start
}

func nextDayStart(t time.Time, w domain.WorkWindow) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+1, w.StartHour, 0, 0, 0, t.Location())
}

// ValidHours reports whether h is a usable amount of work: at least one
// minute once rounded and no more than MaxRequiredHours.
func ValidHours(h float64) bool {
	return hoursToDuration(h) >= time.Minute && h <= MaxRequiredHours
}

// hoursToDuration converts fractional hours to a Duration rounded to the
// minute. Values too large for a Duration yield 0.
func hoursToDuration(h float64) time.Duration {
	if math.IsNaN(h) || math.IsInf(h, 0) || h <= 0 {
		return 0
	}
	minutes := math.Round(h * 60)
	if minutes > float64(math.MaxInt64/int64(time.Minute)) {
		return 0
	}
	return time.Duration(minutes) * time.Minute
}

// SessionCount is the number of blocks needed for hours at blockHours each.
func SessionCount(hours, blockHours float64) int {
	total := hoursToDuration(hours)
	step := hoursToDuration(blockHours)
	if total <= 0 || step <= 0 {
		return 0
	}
	return int((total + step - 1) / step)
}
