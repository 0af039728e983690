package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"calgrid/internal/agenda"
	"calgrid/internal/event"
	"calgrid/internal/layout"
)

const defaultCellWidth = 14

// padCell truncates or pads text to an exact display width.
func padCell(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) > width {
		text = runewidth.Truncate(text, width, "…")
	}
	return runewidth.FillRight(text, width)
}

func bandCells(bands []layout.Band, row, cols int) []string {
	cells := make([]string, cols)
	for _, b := range bands {
		if b.Row != row {
			continue
		}
		for d := b.StartDay; d < b.StartDay+b.Span && d < cols; d++ {
			label := b.Item.Title
			if d > b.StartDay {
				label = "⤷ " + b.Item.Title
			}
			cells[d] = label
		}
	}
	return cells
}

func maxBandRow(bands []layout.Band) int {
	maxRow := -1
	for _, b := range bands {
		if b.Row > maxRow {
			maxRow = b.Row
		}
	}
	return maxRow
}

func renderMonth(res layout.MonthResult, today time.Time, memoDates map[string]bool, cellWidth int) string {
	if cellWidth <= 0 {
		cellWidth = defaultCellWidth
	}
	var b strings.Builder
	b.WriteString(res.First.Format("January 2006") + "\n")

	var header []string
	if len(res.Weeks) > 0 {
		for _, d := range res.Weeks[0].Days {
			header = append(header, padCell(d.Format("Mon"), cellWidth))
		}
	}
	b.WriteString(strings.Join(header, " ") + "\n")

	for _, week := range res.Weeks {
		cells := make([]string, len(week.Days))
		for i, d := range week.Days {
			label := d.Format("2")
			if d.Month() != res.First.Month() {
				label = d.Format("Jan 2")
			}
			if sameDay(d, today) {
				label = "[" + label + "]"
			}
			if memoDates[d.Format(event.DateFormat)] {
				label += " •"
			}
			cells[i] = padCell(label, cellWidth)
		}
		b.WriteString(strings.Join(cells, " ") + "\n")

		for row := 0; row <= maxBandRow(week.Bands); row++ {
			line := bandCells(week.Bands, row, len(week.Days))
			for i := range line {
				line[i] = padCell(line[i], cellWidth)
			}
			b.WriteString(strings.Join(line, " ") + "\n")
		}
		if len(week.Overflow) > 0 {
			line := make([]string, len(week.Days))
			for _, m := range week.Overflow {
				if m.Slot.Day >= 0 && m.Slot.Day < len(line) {
					line[m.Slot.Day] = fmt.Sprintf("+%d more", m.HiddenCount)
				}
			}
			for i := range line {
				line[i] = padCell(line[i], cellWidth)
			}
			b.WriteString(strings.Join(line, " ") + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderWeek(res layout.WeekResult, today time.Time, memoDates map[string]bool, cellWidth int) string {
	if cellWidth <= 0 {
		cellWidth = defaultCellWidth
	}
	var b strings.Builder

	header := make([]string, len(res.Days))
	for i, d := range res.Days {
		label := d.Format("Mon 2")
		if sameDay(d, today) {
			label = "[" + label + "]"
		}
		if memoDates[d.Format(event.DateFormat)] {
			label += " •"
		}
		header[i] = padCell(label, cellWidth)
	}
	b.WriteString(padCell("", 6) + strings.Join(header, " ") + "\n")

	for row := 0; row <= maxBandRow(res.Bands); row++ {
		line := bandCells(res.Bands, row, len(res.Days))
		for i := range line {
			line[i] = padCell(line[i], cellWidth)
		}
		b.WriteString(padCell("all", 6) + strings.Join(line, " ") + "\n")
	}

	markers := map[layout.SlotKey]int{}
	for _, m := range layout.Summarize(res.Hidden) {
		markers[m.Slot] = m.HiddenCount
	}

	first, last := weekHourRange(res, markers)
	for h := first; h <= last; h++ {
		line := make([]string, len(res.Days))
		for d := range res.Days {
			var titles []string
			if d < len(res.Timed) {
				for _, p := range res.Timed[d].Events {
					// Week layouts use one unit per hour, so Top is the
					// start hour within the column.
					if int(p.Top) == h {
						titles = append(titles, p.Item.Title)
					}
				}
			}
			cell := strings.Join(titles, " · ")
			if n, ok := markers[layout.SlotKey{Day: d, Hour: h}]; ok {
				// The marker must survive truncation.
				marker := fmt.Sprintf("+%d", n)
				avail := cellWidth - runewidth.StringWidth(marker) - 1
				if avail < 0 {
					avail = 0
				}
				if runewidth.StringWidth(cell) > avail {
					cell = runewidth.Truncate(cell, avail, "…")
				}
				if cell != "" {
					cell += " "
				}
				cell += marker
			}
			line[d] = padCell(cell, cellWidth)
		}
		b.WriteString(padCell(fmt.Sprintf("%02d:00", h), 6) + strings.Join(line, " ") + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// weekHourRange trims empty hours from both ends, always showing at least
// the 9..17 working block.
func weekHourRange(res layout.WeekResult, markers map[layout.SlotKey]int) (int, int) {
	first, last := 9, 17
	for _, day := range res.Timed {
		for _, p := range day.Events {
			if h := int(p.Top); h < first {
				first = h
			}
			if h := int(p.Top + p.Height); h > last {
				last = h
			}
		}
	}
	for slot := range markers {
		if slot.Hour < first {
			first = slot.Hour
		}
		if slot.Hour > last {
			last = slot.Hour
		}
	}
	if first < 0 {
		first = 0
	}
	if last > 23 {
		last = 23
	}
	return first, last
}

func renderDay(day time.Time, res layout.DayResult, bands []layout.Item, free []agenda.Slot, todos map[string][]event.Todo, hasMemo bool, width int) string {
	if width <= 0 {
		width = 60
	}
	var b strings.Builder
	title := fmt.Sprintf("Schedule for %s", day.Format("Mon 2006-01-02"))
	if hasMemo {
		title += " •"
	}
	b.WriteString(title + "\n")

	b.WriteString("\nAll-day:\n")
	if len(bands) == 0 {
		b.WriteString("- (none)\n")
	} else {
		for _, it := range bands {
			b.WriteString("- " + it.Title + "\n")
		}
	}

	b.WriteString("\nEvents:\n")
	if len(res.Events) == 0 {
		b.WriteString("- (none)\n")
	} else {
		for _, p := range res.Events {
			line := fmt.Sprintf("- %s - %s %s", clockTime(day, p.Start), clockTime(day, p.End), p.Item.Title)
			if p.TotalLanes > 1 {
				line += fmt.Sprintf(" (col %d/%d)", p.Lane+1, p.TotalLanes)
			}
			b.WriteString(wrapText(line, width) + "\n")
			for _, td := range todos[p.Item.ID] {
				mark := "☐"
				if td.Status == "done" {
					mark = "☑"
				}
				b.WriteString(fmt.Sprintf("    %s %s\n", mark, td.Title))
			}
		}
	}
	for _, m := range layout.Summarize(res.Hidden) {
		b.WriteString(fmt.Sprintf("  +%d more at %02d:00\n", m.HiddenCount, m.Slot.Hour))
	}

	b.WriteString("\nFree slots:\n")
	if len(free) == 0 {
		b.WriteString("- (none)\n")
	} else {
		for _, slot := range free {
			b.WriteString(fmt.Sprintf("- %s - %s\n", slot.Start.Format("15:04"), slot.End.Format("15:04")))
		}
	}
	return strings.TrimSpace(b.String())
}

// clockTime formats a timestamp as HH:MM within day. An end exactly on the
// next midnight renders as 24:00 so the day reads top to bottom.
func clockTime(day time.Time, t time.Time) string {
	if !t.Before(day.AddDate(0, 0, 1)) {
		return "24:00"
	}
	return t.Format("15:04")
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func todosByEvent(events []event.Event) map[string][]event.Todo {
	m := map[string][]event.Todo{}
	for _, e := range events {
		if len(e.Todos) > 0 {
			m[e.ID] = e.Todos
		}
	}
	return m
}

func bandedItems(items []layout.Item, dayStart, dayEnd time.Time) []layout.Item {
	var out []layout.Item
	for _, it := range items {
		if !it.Banded() {
			continue
		}
		if !it.Span.Start.Before(dayEnd) || !it.Span.End.After(dayStart) {
			continue
		}
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Span.Start.Equal(out[j].Span.Start) {
			return out[i].Span.Start.Before(out[j].Span.Start)
		}
		return out[i].ID < out[j].ID
	})
	return out
}
