package layout

import (
	"sort"
	"time"
)

// Positioned is a render-ready placement for one timed event within a single
// day column. Left/Width are fractions of the column width; Top/Height are in
// UnitHeight units (one unit per hour by default). The caller scales both to
// pixels or terminal cells.
type Positioned struct {
	Item       Item
	Lane       int
	TotalLanes int
	Start      time.Time // display bounds, clipped to the day
	End        time.Time
	Left       float64
	Width      float64
	Top        float64
	Height     float64
}

// SlotKey identifies where an over-capacity item would have rendered. Hour is
// -1 when the capacity is rows per month cell rather than columns per hour.
type SlotKey struct {
	Day  int
	Hour int
}

// Exclusion is one item removed from direct rendering by a capacity cap.
type Exclusion struct {
	Item   Item
	Slot   SlotKey
	Anchor time.Time
}

type DayOptions struct {
	UnitHeight float64 // vertical units per hour; 0 means 1
	MaxColumns int     // visible column cap; 0 means unlimited
	DayIndex   int     // day column recorded in exclusion slot keys
}

type DayResult struct {
	Events []Positioned
	Hidden []Exclusion
}

// Day lays out timed events for the day starting at dayStart. Items are
// clipped to [dayStart, nextMidnight) before lane assignment; clipping first
// means two events that only overlapped outside the window keep separate
// lanes here, while events merged by a window boundary may share a crowded
// group. That trade is deliberate: columns reflect what the day shows.
//
// An event ending exactly at the next midnight paints through to the bottom
// of the grid (display end hour 24), and one ending exactly at dayStart
// belongs entirely to the previous day.
func Day(items []Item, dayStart time.Time, opts DayOptions) DayResult {
	unit := opts.UnitHeight
	if unit <= 0 {
		unit = 1
	}
	minHeight := unit / 3 // keep ~20-minute events visible and clickable

	dayEnd := dayStart.AddDate(0, 0, 1)
	clipped := make([]Item, 0, len(items))
	for _, it := range items {
		if it.Banded() {
			continue
		}
		span, ok := it.Span.Clip(dayStart, dayEnd)
		if !ok {
			continue
		}
		c := it
		c.Span = span
		clipped = append(clipped, c)
	}
	if len(clipped) == 0 {
		return DayResult{}
	}

	lanes := Partition(clipped)

	var res DayResult
	for _, it := range clipped {
		a := lanes[it.ID]
		startHour := it.Span.Start.Sub(dayStart).Hours()
		endHour := it.Span.End.Sub(dayStart).Hours()

		if opts.MaxColumns > 0 && a.Lane >= opts.MaxColumns {
			res.Hidden = append(res.Hidden, Exclusion{
				Item:   it,
				Slot:   SlotKey{Day: opts.DayIndex, Hour: int(startHour)},
				Anchor: it.Span.Start,
			})
			continue
		}

		cols := a.TotalLanes
		if opts.MaxColumns > 0 && cols > opts.MaxColumns {
			cols = opts.MaxColumns
		}
		width := 1.0 / float64(cols)
		height := (endHour - startHour) * unit
		if height < minHeight {
			height = minHeight
		}
		res.Events = append(res.Events, Positioned{
			Item:       it,
			Lane:       a.Lane,
			TotalLanes: a.TotalLanes,
			Start:      it.Span.Start,
			End:        it.Span.End,
			Left:       float64(a.Lane) * width,
			Width:      width,
			Top:        startHour * unit,
			Height:     height,
		})
	}

	sort.Slice(res.Events, func(i, j int) bool {
		a, b := res.Events[i], res.Events[j]
		if !a.Start.Equal(b.Start) {
			return a.Start.Before(b.Start)
		}
		if a.Lane != b.Lane {
			return a.Lane < b.Lane
		}
		return a.Item.ID < b.Item.ID
	})
	return res
}
