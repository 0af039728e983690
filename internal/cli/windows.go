package cli

import (
	"fmt"
	"strings"
	"time"

	"calgrid/internal/timeparse"
)

// weekStartOf backs up from day to the most recent occurrence of start.
func weekStartOf(day time.Time, start time.Weekday) time.Time {
	day = midnight(day)
	for day.Weekday() != start {
		day = day.AddDate(0, 0, -1)
	}
	return day
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// monthWindow is the fetch range for a month view: from the first grid
// cell through six week rows. Fetching the whole grid keeps leading and
// trailing out-of-month cells populated.
func monthWindow(day time.Time, start time.Weekday) (time.Time, time.Time) {
	first := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
	gridStart := weekStartOf(first, start)
	return gridStart, gridStart.AddDate(0, 0, 42)
}

// parseDate resolves the --date flag; empty means today.
func parseDate(dateStr string, now time.Time, loc *time.Location) (time.Time, error) {
	if strings.TrimSpace(dateStr) == "" {
		return midnight(now), nil
	}
	day, err := timeparse.ParseDate(dateStr, now, loc)
	if err != nil {
		return time.Time{}, err
	}
	if day.IsZero() {
		return time.Time{}, fmt.Errorf("invalid date: %s", dateStr)
	}
	return day, nil
}
