package event

import (
	"testing"
	"time"
)

func TestItemsParsesTimestamps(t *testing.T) {
	events := []Event{
		{ID: "1", StartAt: "2026-03-02T09:00:00Z", EndAt: "2026-03-02T10:00:00Z", Title: "standup", Color: "blue"},
		{ID: "2", StartAt: "2026-03-04", EndAt: "2026-03-06", AllDay: true, Title: "offsite"},
	}
	items := Items(events, time.UTC)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != "1" || items[0].Title != "standup" || items[0].Color != "blue" {
		t.Fatalf("item 0 = %+v", items[0])
	}
	if want := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC); !items[0].Span.Start.Equal(want) {
		t.Fatalf("start = %v, want %v", items[0].Span.Start, want)
	}
	if !items[1].AllDay {
		t.Fatalf("all-day flag lost")
	}
	if want := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC); !items[1].Span.Start.Equal(want) {
		t.Fatalf("bare date start = %v", items[1].Span.Start)
	}
}

func TestItemsDropsUnparseableAndNormalizesReversed(t *testing.T) {
	events := []Event{
		{ID: "bad", StartAt: "not-a-time", EndAt: "2026-03-02T10:00:00Z"},
		{ID: "rev", StartAt: "2026-03-02T10:00:00Z", EndAt: "2026-03-02T09:00:00Z"},
	}
	items := Items(events, time.UTC)
	if len(items) != 1 {
		t.Fatalf("expected only the reversed record to survive, got %d", len(items))
	}
	if !items[0].Span.End.Equal(items[0].Span.Start) {
		t.Fatalf("reversed interval should normalize to a point: %+v", items[0].Span)
	}
}

func TestItemsConvertToDisplayLocation(t *testing.T) {
	loc := time.FixedZone("KST", 9*3600)
	events := []Event{{ID: "1", StartAt: "2026-03-02T00:00:00Z", EndAt: "2026-03-02T01:00:00Z"}}
	items := Items(events, loc)
	if items[0].Span.Start.Hour() != 9 {
		t.Fatalf("start hour in KST = %d, want 9", items[0].Span.Start.Hour())
	}
}

func TestMemoDates(t *testing.T) {
	memos := []Memo{
		{ID: "a", MemoDate: "2026-03-02"},
		{ID: "b", MemoDate: "2026-03-02"},
		{ID: "c", MemoDate: "garbage"},
	}
	dates := MemoDates(memos)
	if len(dates) != 1 || !dates["2026-03-02"] {
		t.Fatalf("dates = %v", dates)
	}
}
