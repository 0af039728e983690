package layout

import "time"

type MonthOptions struct {
	WeekStart      time.Weekday
	MaxVisibleRows int // rows per cell before collapsing; 0 = unlimited
}

// MonthWeek is one row of the month grid. Every event in the row is a band:
// timed single-day events become one-day chips here.
type MonthWeek struct {
	Start     time.Time
	Days      []time.Time
	Bands     []Band
	TotalRows int
	Overflow  []Marker // one per over-capacity day column, Hour == -1
}

type MonthResult struct {
	First time.Time // first day of the month
	Weeks []MonthWeek
}

// Month lays out the month containing anchor as a grid of week rows. Each
// row runs the band placement over everything intersecting it; a per-column
// row cap feeds "+N more" markers.
//
// A cell one past capacity still renders in full: collapsing a single chip
// into a "+1 more" line saves nothing, so markers appear only when at least
// two chips would hide.
func Month(items []Item, anchor time.Time, opts MonthOptions) MonthResult {
	loc := anchor.Location()
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, loc)
	gridStart := first
	for gridStart.Weekday() != opts.WeekStart {
		gridStart = gridStart.AddDate(0, 0, -1)
	}
	nextMonth := first.AddDate(0, 1, 0)

	res := MonthResult{First: first}
	for ws := gridStart; ws.Before(nextMonth); ws = ws.AddDate(0, 0, 7) {
		res.Weeks = append(res.Weeks, monthWeek(items, ws, opts.MaxVisibleRows))
	}
	return res
}

func monthWeek(items []Item, weekStart time.Time, maxRows int) MonthWeek {
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = weekStart.AddDate(0, 0, i)
	}
	weekEnd := weekStart.AddDate(0, 0, 7)

	bands, totalRows := placeBands(items, days, weekEnd)
	week := MonthWeek{Start: weekStart, Days: days, TotalRows: totalRows}
	if maxRows <= 0 || totalRows <= maxRows+1 {
		week.Bands = bands
		return week
	}

	// Columns where more than one band sits past the cap collapse; a band
	// past the cap hides if any column it covers collapses.
	overCount := make([]int, 7)
	for _, b := range bands {
		if b.Row < maxRows {
			continue
		}
		for d := b.StartDay; d < b.StartDay+b.Span; d++ {
			overCount[d]++
		}
	}
	collapsed := make([]bool, 7)
	for d, n := range overCount {
		collapsed[d] = n >= 2
	}

	var hidden []Exclusion
	for _, b := range bands {
		hide := false
		if b.Row >= maxRows {
			for d := b.StartDay; d < b.StartDay+b.Span; d++ {
				if collapsed[d] {
					hide = true
					break
				}
			}
		}
		if !hide {
			week.Bands = append(week.Bands, b)
			continue
		}
		for d := b.StartDay; d < b.StartDay+b.Span; d++ {
			if collapsed[d] {
				hidden = append(hidden, Exclusion{
					Item:   b.Item,
					Slot:   SlotKey{Day: d, Hour: -1},
					Anchor: days[d],
				})
			}
		}
	}
	week.Overflow = Summarize(hidden)
	return week
}
