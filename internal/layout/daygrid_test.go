package layout

import (
	"testing"
	"time"
)

func TestClipMultiDayEventToMiddleDay(t *testing.T) {
	// [Day0 22:00, Day2 02:00) clipped to Day1 is the full day bar.
	iv := NewInterval(at(22, 0), base.AddDate(0, 0, 2).Add(2*time.Hour))
	day1 := base.AddDate(0, 0, 1)
	clipped, ok := iv.Clip(day1, day1.AddDate(0, 0, 1))
	if !ok {
		t.Fatalf("expected interval to survive clipping")
	}
	if !clipped.Start.Equal(day1) || !clipped.End.Equal(day1.AddDate(0, 0, 1)) {
		t.Fatalf("clipped = [%v, %v), want full Day1", clipped.Start, clipped.End)
	}
}

func TestDayClipsAndPositions(t *testing.T) {
	items := []Item{
		timed("late", at(22, 0), base.AddDate(0, 0, 1).Add(2*time.Hour)), // 22:00 - next 02:00
		timed("morning", at(9, 0), at(10, 30)),
	}
	res := Day(items, base, DayOptions{})
	if len(res.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(res.Events))
	}
	byID := map[string]Positioned{}
	for _, p := range res.Events {
		byID[p.Item.ID] = p
	}
	late := byID["late"]
	if !late.End.Equal(base.AddDate(0, 0, 1)) {
		t.Fatalf("late event should clip at next midnight, got end %v", late.End)
	}
	if late.Top != 22 || late.Top+late.Height != 24 {
		t.Fatalf("late event should paint 22..24, got top=%v height=%v", late.Top, late.Height)
	}
	morning := byID["morning"]
	if morning.Top != 9 || morning.Height != 1.5 {
		t.Fatalf("morning event geometry top=%v height=%v, want 9 and 1.5", morning.Top, morning.Height)
	}
}

func TestDayEndingAtMidnightBelongsToPreviousDay(t *testing.T) {
	ev := timed("x", at(20, 0), base.AddDate(0, 0, 1))
	day1 := base.AddDate(0, 0, 1)
	if res := Day([]Item{ev}, day1, DayOptions{}); len(res.Events) != 0 {
		t.Fatalf("event ending at midnight must not spill into the next day: %+v", res.Events)
	}
	res := Day([]Item{ev}, base, DayOptions{})
	if len(res.Events) != 1 {
		t.Fatalf("event missing from its own day")
	}
	if got := res.Events[0]; got.Top+got.Height != 24 {
		t.Fatalf("display end hour should be 24, got %v", got.Top+got.Height)
	}
}

func TestDayMinVisibleHeight(t *testing.T) {
	res := Day([]Item{timed("blip", at(12, 0), at(12, 5))}, base, DayOptions{UnitHeight: 60})
	if len(res.Events) != 1 {
		t.Fatalf("expected 1 event")
	}
	if res.Events[0].Height != 20 {
		t.Fatalf("5-minute event should get the 20-minute floor, got %v", res.Events[0].Height)
	}
}

func TestDayFractionalColumns(t *testing.T) {
	items := []Item{
		timed("a", at(9, 0), at(11, 0)),
		timed("b", at(10, 0), at(12, 0)),
		timed("solo", at(15, 0), at(16, 0)),
	}
	res := Day(items, base, DayOptions{})
	byID := map[string]Positioned{}
	for _, p := range res.Events {
		byID[p.Item.ID] = p
	}
	if a := byID["a"]; a.Width != 0.5 || a.Left != 0 {
		t.Fatalf("a: width=%v left=%v, want 0.5/0", a.Width, a.Left)
	}
	if b := byID["b"]; b.Width != 0.5 || b.Left != 0.5 {
		t.Fatalf("b: width=%v left=%v, want 0.5/0.5", b.Width, b.Left)
	}
	if solo := byID["solo"]; solo.Width != 1 || solo.Left != 0 {
		t.Fatalf("solo event should take the full column, got width=%v left=%v", solo.Width, solo.Left)
	}
}

func TestDayColumnCap(t *testing.T) {
	items := []Item{
		timed("a", at(9, 0), at(10, 0)),
		timed("b", at(9, 0), at(10, 0)),
		timed("c", at(9, 0), at(10, 0)),
		timed("d", at(9, 15), at(10, 0)),
	}
	res := Day(items, base, DayOptions{MaxColumns: 3, DayIndex: 4})
	if len(res.Events) != 3 || len(res.Hidden) != 1 {
		t.Fatalf("want 3 visible + 1 hidden, got %d/%d", len(res.Events), len(res.Hidden))
	}
	ex := res.Hidden[0]
	if ex.Item.ID != "d" {
		t.Fatalf("latest starter should overflow, got %s", ex.Item.ID)
	}
	if ex.Slot != (SlotKey{Day: 4, Hour: 9}) {
		t.Fatalf("exclusion slot = %+v, want day 4 hour 9", ex.Slot)
	}
	for _, p := range res.Events {
		if p.Width != 1.0/3 {
			t.Fatalf("capped group width should be 1/3, got %v", p.Width)
		}
	}
}

func TestDaySkipsBandedAndOutside(t *testing.T) {
	allDay := Item{ID: "allday", Span: NewInterval(base, base.AddDate(0, 0, 1)), AllDay: true}
	multi := timed("multi", at(1, 0), base.AddDate(0, 0, 2)) // >= 24h, banded by duration
	outside := timed("out", base.AddDate(0, 0, 3), base.AddDate(0, 0, 3).Add(time.Hour))
	res := Day([]Item{allDay, multi, outside}, base, DayOptions{})
	if len(res.Events) != 0 || len(res.Hidden) != 0 {
		t.Fatalf("banded and out-of-window items must be dropped, got %+v", res.Events)
	}
}

func TestDayNormalizesReversedInterval(t *testing.T) {
	bad := Item{ID: "bad", Span: NewInterval(at(10, 0), at(9, 0))}
	res := Day([]Item{bad}, base, DayOptions{})
	if len(res.Events) != 1 {
		t.Fatalf("reversed interval should normalize to a point, not vanish")
	}
	if got := res.Events[0]; !got.Start.Equal(at(10, 0)) {
		t.Fatalf("normalized start = %v", got.Start)
	}
}
