package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"calgrid/internal/event"
)

// Client is a read-only client for the remote calendar backend. Events,
// todos, and memos live entirely on the backend; calgrid only fetches and
// lays them out.
type Client struct {
	baseURL   string
	projectID string
	http      *http.Client
}

func New(baseURL, projectID string) *Client {
	return &Client{
		baseURL:   baseURL,
		projectID: projectID,
		http:      &http.Client{Timeout: 15 * time.Second},
	}
}

type eventsResponse struct {
	Events []event.Event `json:"events"`
}

type memosResponse struct {
	Memos []event.Memo `json:"memos"`
}

func (c *Client) Events(ctx context.Context, from, to time.Time) ([]event.Event, error) {
	q := url.Values{}
	if c.projectID != "" {
		q.Set("projectId", c.projectID)
	}
	q.Set("from", from.Format(time.RFC3339))
	q.Set("to", to.Format(time.RFC3339))
	var resp eventsResponse
	if err := c.get(ctx, "/api/events", q, &resp); err != nil {
		return nil, err
	}
	return resp.Events, nil
}

func (c *Client) Memos(ctx context.Context, from, to time.Time) ([]event.Memo, error) {
	q := url.Values{}
	if c.projectID != "" {
		q.Set("projectId", c.projectID)
	}
	q.Set("from", from.Format(event.DateFormat))
	q.Set("to", to.Format(event.DateFormat))
	var resp memosResponse
	if err := c.get(ctx, "/api/memos", q, &resp); err != nil {
		return nil, err
	}
	return resp.Memos, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("backend returned %s for %s", resp.Status, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode backend response: %w", err)
	}
	return nil
}
