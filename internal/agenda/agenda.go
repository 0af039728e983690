package agenda

import (
	"fmt"
	"sort"
	"time"

	"calgrid/internal/layout"
	"calgrid/internal/timeparse"
)

type Slot struct {
	Start time.Time
	End   time.Time
}

func DayBounds(day time.Time, startClock, endClock string, loc *time.Location) (time.Time, time.Time, error) {
	start, err := timeparse.ParseClock(startClock, day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := timeparse.ParseClock(endClock, day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("workday_end must be after workday_start")
	}
	return start, end, nil
}

// FreeSlots returns the gaps of the workday not covered by any item.
// Zero-length spans block nothing.
func FreeSlots(items []layout.Item, dayStart, dayEnd time.Time) []Slot {
	var busy []Slot
	for _, it := range items {
		if it.Span.IsPoint() {
			continue
		}
		busy = append(busy, Slot{Start: it.Span.Start, End: it.Span.End})
	}
	if len(busy) == 0 {
		return []Slot{{Start: dayStart, End: dayEnd}}
	}
	sort.Slice(busy, func(i, j int) bool { return busy[i].Start.Before(busy[j].Start) })
	merged := []Slot{busy[0]}
	for _, b := range busy[1:] {
		last := &merged[len(merged)-1]
		if b.Start.After(last.End) {
			merged = append(merged, b)
			continue
		}
		if b.End.After(last.End) {
			last.End = b.End
		}
	}

	var free []Slot
	cursor := dayStart
	for _, b := range merged {
		if b.End.Before(dayStart) || b.Start.After(dayEnd) {
			continue
		}
		start := maxTime(cursor, dayStart)
		end := minTime(b.Start, dayEnd)
		if end.After(start) {
			free = append(free, Slot{Start: start, End: end})
		}
		if b.End.After(cursor) {
			cursor = b.End
		}
	}
	if dayEnd.After(cursor) {
		free = append(free, Slot{Start: cursor, End: dayEnd})
	}
	return free
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
