package timeparse

import (
	"fmt"
	"strings"
	"time"

	"github.com/tj/go-naturaldate"
)

func LoadLocation(name string) (*time.Location, error) {
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	return time.LoadLocation(name)
}

// ParseDate resolves a natural-language or ISO date to midnight in loc.
// An empty string yields the zero time so callers can default to today.
func ParseDate(dateStr string, now time.Time, loc *time.Location) (time.Time, error) {
	if dateStr == "" {
		return time.Time{}, nil
	}
	parsed, err := naturaldate.Parse(dateStr, now.In(loc))
	if err != nil {
		if t, parseErr := time.ParseInLocation("2006-01-02", dateStr, loc); parseErr == nil {
			return t, nil
		}
		return time.Time{}, err
	}
	return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, loc), nil
}

func ParseClock(clock string, base time.Time, loc *time.Location) (time.Time, error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("invalid clock: %s", clock)
	}
	hour, err := parseInt(parts[0])
	if err != nil {
		return time.Time{}, err
	}
	min, err := parseInt(parts[1])
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(base.Year(), base.Month(), base.Day(), hour, min, 0, 0, loc), nil
}

func parseInt(value string) (int, error) {
	var i int
	_, err := fmt.Sscanf(value, "%d", &i)
	return i, err
}
