package event

import (
	"time"

	"calgrid/internal/layout"
)

// Event is the wire shape the calendar backend serves for a date range.
// StartAt/EndAt are ISO-8601; all-day events may carry bare dates.
type Event struct {
	ID      string `json:"id"`
	StartAt string `json:"startAt"`
	EndAt   string `json:"endAt"`
	AllDay  bool   `json:"allDay"`
	Color   string `json:"color"`
	Title   string `json:"title"`
	Todos   []Todo `json:"todos,omitempty"`
}

type Todo struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

// Memo marks a date as annotated; it carries no layout geometry.
type Memo struct {
	ID       string `json:"id"`
	MemoDate string `json:"memoDate"`
}

const DateFormat = "2006-01-02"

// Items converts wire events into layout items in the display location.
// Records with unparseable timestamps are dropped; a reversed interval
// normalizes to a point rather than failing the whole batch. The AllDay
// flag is passed through as-is — the layout engine reclassifies anyway.
func Items(events []Event, loc *time.Location) []layout.Item {
	items := make([]layout.Item, 0, len(events))
	for _, e := range events {
		start, err := parseStamp(e.StartAt, loc)
		if err != nil {
			continue
		}
		end, err := parseStamp(e.EndAt, loc)
		if err != nil {
			continue
		}
		items = append(items, layout.Item{
			ID:     e.ID,
			Span:   layout.NewInterval(start.In(loc), end.In(loc)),
			AllDay: e.AllDay,
			Title:  e.Title,
			Color:  e.Color,
		})
	}
	return items
}

func parseStamp(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation(DateFormat, s, loc)
}

// MemoDates collapses memos into the set of annotated dates.
func MemoDates(memos []Memo) map[string]bool {
	dates := make(map[string]bool, len(memos))
	for _, m := range memos {
		if _, err := time.Parse(DateFormat, m.MemoDate); err != nil {
			continue
		}
		dates[m.MemoDate] = true
	}
	return dates
}
