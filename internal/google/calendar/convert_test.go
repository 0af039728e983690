package calendar

import (
	"testing"

	"google.golang.org/api/calendar/v3"
)

func TestConvertTimedEvent(t *testing.T) {
	e := &calendar.Event{
		Id:      "ev1",
		Summary: "standup",
		ColorId: "9",
		Start:   &calendar.EventDateTime{DateTime: "2026-03-02T09:00:00Z"},
		End:     &calendar.EventDateTime{DateTime: "2026-03-02T09:30:00Z"},
	}
	got := convert(e)
	if got.ID != "ev1" || got.Title != "standup" {
		t.Fatalf("converted = %+v", got)
	}
	if got.AllDay {
		t.Fatalf("timed event flagged all-day")
	}
	if got.StartAt != "2026-03-02T09:00:00Z" || got.EndAt != "2026-03-02T09:30:00Z" {
		t.Fatalf("timestamps = %q .. %q", got.StartAt, got.EndAt)
	}
	if got.Color != "blue" {
		t.Fatalf("color = %q, want blue", got.Color)
	}
}

func TestConvertAllDayEvent(t *testing.T) {
	e := &calendar.Event{
		Id:    "ev2",
		Start: &calendar.EventDateTime{Date: "2026-03-04"},
		End:   &calendar.EventDateTime{Date: "2026-03-06"},
	}
	got := convert(e)
	if !got.AllDay {
		t.Fatalf("date-only event should be all-day")
	}
	if got.StartAt != "2026-03-04" || got.EndAt != "2026-03-06" {
		t.Fatalf("dates = %q .. %q", got.StartAt, got.EndAt)
	}
}

func TestConvertExtractsTodoMarkers(t *testing.T) {
	e := &calendar.Event{
		Id:          "ev3",
		Description: "notes\ncalgrid_todo=buy snacks\ncalgrid_todo=book room",
		Start:       &calendar.EventDateTime{DateTime: "2026-03-02T09:00:00Z"},
		End:         &calendar.EventDateTime{DateTime: "2026-03-02T10:00:00Z"},
	}
	got := convert(e)
	if len(got.Todos) != 2 || got.Todos[0].Title != "buy snacks" || got.Todos[1].Title != "book room" {
		t.Fatalf("todos = %+v", got.Todos)
	}
}
