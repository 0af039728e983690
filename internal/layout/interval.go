package layout

import "time"

// Interval is a half-open time range [Start, End). A zero-duration interval
// is a point event: it still takes a lane, but only overlaps intervals that
// strictly contain its instant.
type Interval struct {
	Start time.Time
	End   time.Time
}

// NewInterval builds an interval, clamping End up to Start when the input is
// reversed. A bad upstream record must not break a whole render pass.
func NewInterval(start, end time.Time) Interval {
	if end.Before(start) {
		end = start
	}
	return Interval{Start: start, End: end}
}

func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

func (iv Interval) IsPoint() bool {
	return !iv.End.After(iv.Start)
}

// Overlaps uses half-open semantics: intervals sharing exactly one endpoint
// do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	if iv.IsPoint() {
		return other.Start.Before(iv.Start) && other.End.After(iv.Start)
	}
	if other.IsPoint() {
		return iv.Start.Before(other.Start) && iv.End.After(other.Start)
	}
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// Clip truncates the interval to [windowStart, windowEnd). The second return
// is false when nothing of the interval falls inside the window. A point
// event at windowStart belongs to the window.
func (iv Interval) Clip(windowStart, windowEnd time.Time) (Interval, bool) {
	if iv.IsPoint() {
		if iv.Start.Before(windowStart) || !iv.Start.Before(windowEnd) {
			return Interval{}, false
		}
		return iv, true
	}
	start := maxTime(iv.Start, windowStart)
	end := minTime(iv.End, windowEnd)
	if !end.After(start) {
		return Interval{}, false
	}
	return Interval{Start: start, End: end}, true
}

// Item is one calendar event as seen by the layout engine. All fields are
// caller-owned values; the engine never mutates or retains them.
type Item struct {
	ID     string
	Span   Interval
	AllDay bool
	Title  string
	Color  string
}

const multiDayThreshold = 24 * time.Hour

// Banded reports whether the item renders as an all-day/multi-day band
// rather than a timed block. The caller's AllDay flag is advisory: sources
// mislabel short-but-multi-day events, so duration decides too. Every view
// must classify through this method and nothing else.
func (it Item) Banded() bool {
	return it.AllDay || it.Span.Duration() >= multiDayThreshold
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
