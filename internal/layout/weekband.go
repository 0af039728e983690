package layout

import (
	"sort"
	"time"
)

// Band is a horizontal placement for an all-day or multi-day event across
// day columns. StartDay is the first occupied column (0..len(days)-1), Span
// the number of columns, Row the vertical slot within the band section.
type Band struct {
	Item     Item
	StartDay int
	Span     int
	Row      int
}

type WeekOptions struct {
	UnitHeight        float64 // passed through to the timed layer
	MaxVisibleColumns int     // per-day column cap for timed events; 0 = unlimited
}

type WeekResult struct {
	Days      []time.Time // the 7 day-column boundaries
	Bands     []Band
	TotalRows int
	Timed     []DayResult // one per day column
	Hidden    []Exclusion // timed-layer exclusions, keyed (day, hour bucket)
}

// Week lays out a 7-day window in two independent layers: banded items as
// horizontal rows spanning their day range, and timed items per day column
// with DayGrid semantics plus the visible-column cap.
func Week(items []Item, weekStart time.Time, opts WeekOptions) WeekResult {
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = weekStart.AddDate(0, 0, i)
	}
	weekEnd := weekStart.AddDate(0, 0, 7)

	var banded, timed []Item
	for _, it := range items {
		if it.Banded() {
			banded = append(banded, it)
		} else {
			timed = append(timed, it)
		}
	}

	res := WeekResult{Days: days}
	res.Bands, res.TotalRows = placeBands(banded, days, weekEnd)

	res.Timed = make([]DayResult, 7)
	for i := range days {
		day := Day(timed, days[i], DayOptions{
			UnitHeight: opts.UnitHeight,
			MaxColumns: opts.MaxVisibleColumns,
			DayIndex:   i,
		})
		res.Timed[i] = day
		res.Hidden = append(res.Hidden, day.Hidden...)
	}
	return res
}

// placeBands assigns each banded item a row via a first-fit occupancy grid.
// Long bands pick rows first (span descending, then start ascending): unlike
// the timed layers this orders for minimal total rows, not chronology.
func placeBands(items []Item, days []time.Time, windowEnd time.Time) ([]Band, int) {
	windowStart := days[0]

	type candidate struct {
		item     Item
		startDay int
		endDay   int
	}
	cands := make([]candidate, 0, len(items))
	for _, it := range items {
		start := maxTime(it.Span.Start, windowStart)
		end := minTime(it.Span.End, windowEnd)
		startDay := dayColumn(days, start)
		endDay := dayColumn(days, end)
		if endDay >= len(days) {
			endDay = len(days) - 1
		} else if endDay >= 0 && !it.Span.IsPoint() && end.Equal(days[endDay]) {
			// An end on a midnight boundary closes out the previous
			// day; a one-day all-day event ends at the next midnight
			// and must not leak a column.
			endDay--
		}
		if startDay < 0 || startDay >= len(days) || startDay > endDay {
			continue
		}
		cands = append(cands, candidate{item: it, startDay: startDay, endDay: endDay})
	}

	sort.Slice(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		spanA := a.endDay - a.startDay
		spanB := b.endDay - b.startDay
		if spanA != spanB {
			return spanA > spanB
		}
		if !a.item.Span.Start.Equal(b.item.Span.Start) {
			return a.item.Span.Start.Before(b.item.Span.Start)
		}
		return a.item.ID < b.item.ID
	})

	var rows [][]bool
	bands := make([]Band, 0, len(cands))
	for _, c := range cands {
		row := -1
		for r := range rows {
			if rowFree(rows[r], c.startDay, c.endDay) {
				row = r
				break
			}
		}
		if row < 0 {
			rows = append(rows, make([]bool, len(days)))
			row = len(rows) - 1
		}
		for d := c.startDay; d <= c.endDay; d++ {
			rows[row][d] = true
		}
		bands = append(bands, Band{
			Item:     c.item,
			StartDay: c.startDay,
			Span:     c.endDay - c.startDay + 1,
			Row:      row,
		})
	}
	return bands, len(rows)
}

func rowFree(row []bool, startDay, endDay int) bool {
	for d := startDay; d <= endDay; d++ {
		if row[d] {
			return false
		}
	}
	return true
}

// dayColumn returns the index of the day column containing t, or -1 when t
// precedes the window. A t at or past the last boundary clamps to the last
// column plus any overshoot so callers can clamp or drop.
func dayColumn(days []time.Time, t time.Time) int {
	if t.Before(days[0]) {
		return -1
	}
	for i := len(days) - 1; i >= 0; i-- {
		if !t.Before(days[i]) {
			if i == len(days)-1 && !t.Before(days[i].AddDate(0, 0, 1)) {
				return len(days)
			}
			return i
		}
	}
	return -1
}
