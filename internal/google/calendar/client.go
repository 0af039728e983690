package calendar

import (
	"context"
	"net/http"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"calgrid/internal/event"
)

type Client struct {
	svc *calendar.Service
}

func New(ctx context.Context, httpClient *http.Client) (*Client, error) {
	svc, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, err
	}
	return &Client{svc: svc}, nil
}

// Events fetches every configured calendar for the window and converts the
// results to the wire shape the layout pipeline consumes. A failing
// calendar fails the whole fetch; partial views are worse than an error.
func (c *Client) Events(ctx context.Context, calendarIDs []string, from, to time.Time) ([]event.Event, error) {
	var all []event.Event
	for _, id := range calendarIDs {
		items, err := c.listEvents(ctx, id, from, to)
		if err != nil {
			return nil, err
		}
		for _, e := range items {
			all = append(all, convert(e))
		}
	}
	return all, nil
}

func (c *Client) listEvents(ctx context.Context, calendarID string, from, to time.Time) ([]*calendar.Event, error) {
	call := c.svc.Events.List(calendarID).
		Context(ctx).
		ShowDeleted(false).
		SingleEvents(true).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		OrderBy("startTime")
	resp, err := call.Do()
	if err != nil {
		return nil, err
	}
	return resp.Items, nil
}

func (c *Client) ListCalendars(ctx context.Context) ([]*calendar.CalendarListEntry, error) {
	resp, err := c.svc.CalendarList.List().Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Items, nil
}
