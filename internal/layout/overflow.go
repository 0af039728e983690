package layout

import (
	"sort"
	"time"
)

// Marker is one "+N more" affordance. Anchor is the earliest display start
// among the hidden items so the marker sits where the first of them would
// have appeared; for row-capped month cells the slot's Day column is the
// position and Anchor carries the day start.
type Marker struct {
	Slot        SlotKey
	HiddenCount int
	Anchor      time.Time
}

// Summarize folds capacity exclusions into one marker per slot. It is pure
// and idempotent: the same exclusion list always yields the same markers, in
// slot-key order.
func Summarize(hidden []Exclusion) []Marker {
	if len(hidden) == 0 {
		return nil
	}
	bySlot := map[SlotKey]*Marker{}
	for _, ex := range hidden {
		m := bySlot[ex.Slot]
		if m == nil {
			m = &Marker{Slot: ex.Slot, Anchor: ex.Anchor}
			bySlot[ex.Slot] = m
		}
		m.HiddenCount++
		if ex.Anchor.Before(m.Anchor) {
			m.Anchor = ex.Anchor
		}
	}
	out := make([]Marker, 0, len(bySlot))
	for _, m := range bySlot {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Slot.Day != out[j].Slot.Day {
			return out[i].Slot.Day < out[j].Slot.Day
		}
		return out[i].Slot.Hour < out[j].Slot.Hour
	})
	return out
}
