package layout

import (
	"reflect"
	"testing"
)

func TestSummarizeGroupsBySlot(t *testing.T) {
	hidden := []Exclusion{
		{Item: Item{ID: "b"}, Slot: SlotKey{Day: 2, Hour: 9}, Anchor: at(9, 30)},
		{Item: Item{ID: "a"}, Slot: SlotKey{Day: 2, Hour: 9}, Anchor: at(9, 0)},
		{Item: Item{ID: "c"}, Slot: SlotKey{Day: 0, Hour: 14}, Anchor: at(14, 15)},
	}
	got := Summarize(hidden)
	want := []Marker{
		{Slot: SlotKey{Day: 0, Hour: 14}, HiddenCount: 1, Anchor: at(14, 15)},
		{Slot: SlotKey{Day: 2, Hour: 9}, HiddenCount: 2, Anchor: at(9, 0)},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("markers = %+v, want %+v", got, want)
	}
}

func TestSummarizeAnchorIsEarliestStart(t *testing.T) {
	hidden := []Exclusion{
		{Item: Item{ID: "late"}, Slot: SlotKey{Day: 1, Hour: 9}, Anchor: at(9, 45)},
		{Item: Item{ID: "early"}, Slot: SlotKey{Day: 1, Hour: 9}, Anchor: at(9, 5)},
	}
	got := Summarize(hidden)
	if len(got) != 1 || !got[0].Anchor.Equal(at(9, 5)) {
		t.Fatalf("anchor should be the earliest hidden start, got %+v", got)
	}
}

func TestSummarizeIdempotent(t *testing.T) {
	hidden := []Exclusion{
		{Item: Item{ID: "x"}, Slot: SlotKey{Day: 3, Hour: -1}, Anchor: base},
		{Item: Item{ID: "y"}, Slot: SlotKey{Day: 3, Hour: -1}, Anchor: base},
		{Item: Item{ID: "z"}, Slot: SlotKey{Day: 5, Hour: -1}, Anchor: base},
	}
	first := Summarize(hidden)
	second := Summarize(hidden)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("summarizer is not idempotent: %+v vs %+v", first, second)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if got := Summarize(nil); got != nil {
		t.Fatalf("no exclusions should yield no markers, got %+v", got)
	}
}
