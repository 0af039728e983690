package agenda

import (
	"testing"
	"time"

	"calgrid/internal/layout"
)

var day = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func slot(startHour, startMin, endHour, endMin int) layout.Item {
	return layout.Item{
		ID: "x",
		Span: layout.NewInterval(
			day.Add(time.Duration(startHour)*time.Hour+time.Duration(startMin)*time.Minute),
			day.Add(time.Duration(endHour)*time.Hour+time.Duration(endMin)*time.Minute),
		),
	}
}

func TestDayBounds(t *testing.T) {
	start, end, err := DayBounds(day, "09:00", "18:00", time.UTC)
	if err != nil {
		t.Fatalf("DayBounds: %v", err)
	}
	if start.Hour() != 9 || end.Hour() != 18 {
		t.Fatalf("bounds = %v .. %v", start, end)
	}
	if _, _, err := DayBounds(day, "18:00", "09:00", time.UTC); err == nil {
		t.Fatalf("inverted workday should error")
	}
}

func TestFreeSlotsEmptyDay(t *testing.T) {
	start := day.Add(9 * time.Hour)
	end := day.Add(18 * time.Hour)
	free := FreeSlots(nil, start, end)
	if len(free) != 1 || !free[0].Start.Equal(start) || !free[0].End.Equal(end) {
		t.Fatalf("free = %+v", free)
	}
}

func TestFreeSlotsMergesOverlaps(t *testing.T) {
	items := []layout.Item{
		slot(10, 0, 11, 0),
		slot(10, 30, 12, 0),
		slot(14, 0, 15, 0),
	}
	free := FreeSlots(items, day.Add(9*time.Hour), day.Add(18*time.Hour))
	want := []Slot{
		{Start: day.Add(9 * time.Hour), End: day.Add(10 * time.Hour)},
		{Start: day.Add(12 * time.Hour), End: day.Add(14 * time.Hour)},
		{Start: day.Add(15 * time.Hour), End: day.Add(18 * time.Hour)},
	}
	if len(free) != len(want) {
		t.Fatalf("free = %+v", free)
	}
	for i := range want {
		if !free[i].Start.Equal(want[i].Start) || !free[i].End.Equal(want[i].End) {
			t.Fatalf("slot %d = %+v, want %+v", i, free[i], want[i])
		}
	}
}

func TestFreeSlotsIgnoresPoints(t *testing.T) {
	items := []layout.Item{{ID: "p", Span: layout.NewInterval(day.Add(10*time.Hour), day.Add(10*time.Hour))}}
	free := FreeSlots(items, day.Add(9*time.Hour), day.Add(18*time.Hour))
	if len(free) != 1 {
		t.Fatalf("a reminder should not split the day: %+v", free)
	}
}
