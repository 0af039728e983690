package layout

import "sort"

// Assignment is the lane given to one item. TotalLanes is shared by every
// item in the same overlap component: items far apart in time reuse lane 0
// without inflating each other's lane count.
type Assignment struct {
	ID         string
	Lane       int
	TotalLanes int
}

// Partition assigns a lane to every item so that no two overlapping items
// share one. Output is deterministic for identical input regardless of item
// order: items are placed sorted by start ascending, duration descending,
// then ID ascending, so equal-start events always stack longer-first.
func Partition(items []Item) map[string]Assignment {
	if len(items) == 0 {
		return map[string]Assignment{}
	}
	sorted := make([]Item, len(items))
	copy(sorted, items)
	sortForPlacement(sorted)

	// Greedy interval coloring: each lane tracks its max-end occupant,
	// which is the only occupant a start-sorted newcomer can still
	// overlap. Testing real overlap rather than "end <= start" keeps
	// point events on shared boundaries from opening needless lanes.
	lanes := make([]Interval, 0, 4)
	assigned := make([]int, len(sorted))
	for i, it := range sorted {
		lane := -1
		for l := range lanes {
			if !lanes[l].Overlaps(it.Span) {
				lane = l
				break
			}
		}
		if lane < 0 {
			lanes = append(lanes, it.Span)
			lane = len(lanes) - 1
		} else if it.Span.End.After(lanes[lane].End) {
			lanes[lane] = it.Span
		}
		assigned[i] = lane
	}

	comp := overlapComponents(sorted)

	// Greedy lane reuse can skip lanes inside a component (a point event
	// next to a longer equal-start interval, for instance), so compact the
	// lane indices per component before reporting totals.
	type laneSet struct {
		lanes map[int]bool
	}
	sets := map[int]*laneSet{}
	for i := range sorted {
		s := sets[comp[i]]
		if s == nil {
			s = &laneSet{lanes: map[int]bool{}}
			sets[comp[i]] = s
		}
		s.lanes[assigned[i]] = true
	}
	ranks := map[int]map[int]int{}
	for root, s := range sets {
		used := make([]int, 0, len(s.lanes))
		for l := range s.lanes {
			used = append(used, l)
		}
		sort.Ints(used)
		rank := make(map[int]int, len(used))
		for r, l := range used {
			rank[l] = r
		}
		ranks[root] = rank
	}

	out := make(map[string]Assignment, len(sorted))
	for i, it := range sorted {
		rank := ranks[comp[i]]
		out[it.ID] = Assignment{
			ID:         it.ID,
			Lane:       rank[assigned[i]],
			TotalLanes: len(rank),
		}
	}
	return out
}

func sortForPlacement(items []Item) {
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if !a.Span.Start.Equal(b.Span.Start) {
			return a.Span.Start.Before(b.Span.Start)
		}
		da, db := a.Span.Duration(), b.Span.Duration()
		if da != db {
			return da > db
		}
		return a.ID < b.ID
	})
}

// overlapComponents labels each item (already sorted by start) with the root
// index of its transitive-overlap component. Items whose intervals overlap,
// directly or through intermediaries, share a label.
func overlapComponents(sorted []Item) []int {
	parent := make([]int, len(sorted))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[rb] = ra
		}
	}

	// Sweep with an active window: an item can only overlap actives whose
	// end lies past its start. The pairwise test stays exact so that point
	// events on a shared boundary land in their own component.
	active := make([]int, 0, 8)
	for i, it := range sorted {
		next := active[:0]
		for _, j := range active {
			if sorted[j].Span.End.After(it.Span.Start) {
				next = append(next, j)
			}
		}
		active = next
		for _, j := range active {
			if sorted[j].Span.Overlaps(it.Span) {
				union(j, i)
			}
		}
		active = append(active, i)
	}

	comp := make([]int, len(sorted))
	for i := range sorted {
		comp[i] = find(i)
	}
	return comp
}
