package calendar

import (
	"google.golang.org/api/calendar/v3"

	"calgrid/internal/event"
	"calgrid/internal/metadata"
)

const todoMarker = "calgrid_todo"

// Google colorId values are opaque digits; map them onto the palette names
// the backend uses so rendering treats both sources alike.
var colorNames = map[string]string{
	"1":  "lavender",
	"2":  "green",
	"3":  "purple",
	"4":  "red",
	"5":  "yellow",
	"6":  "orange",
	"7":  "cyan",
	"8":  "gray",
	"9":  "blue",
	"10": "green",
	"11": "red",
}

func convert(e *calendar.Event) event.Event {
	out := event.Event{
		ID:    e.Id,
		Title: e.Summary,
		Color: colorNames[e.ColorId],
	}
	if e.Start != nil {
		if e.Start.DateTime != "" {
			out.StartAt = e.Start.DateTime
		} else {
			out.StartAt = e.Start.Date
			out.AllDay = true
		}
	}
	if e.End != nil {
		if e.End.DateTime != "" {
			out.EndAt = e.End.DateTime
		} else {
			out.EndAt = e.End.Date
		}
	}
	for _, title := range metadata.ExtractAll(e.Description, todoMarker) {
		out.Todos = append(out.Todos, event.Todo{Title: title})
	}
	return out
}
