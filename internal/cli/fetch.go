package cli

import (
	"context"
	"time"

	"calgrid/internal/cache"
	"calgrid/internal/event"
)

const cacheTTL = 5 * time.Minute

// FetchWindow loads events and memos for a half-open window, serving a
// fresh cached copy when one exists and falling back to a stale copy when
// the source is unreachable. Memo failures never fail the view.
func (a *App) FetchWindow(ctx context.Context, from, to time.Time) ([]event.Event, []event.Memo, error) {
	key := cache.Key(a.SourceName, from, to)
	c, err := cache.Load(a.CachePath)
	if err != nil {
		c = cache.Default()
	}
	if w, ok := c.Fresh(key, cacheTTL, a.Now()); ok {
		return w.Events, w.Memos, nil
	}

	events, err := a.Source.Events(ctx, from, to)
	if err != nil {
		if w, ok := c.Stale(key); ok {
			return w.Events, w.Memos, nil
		}
		return nil, nil, err
	}
	memos, err := a.Source.Memos(ctx, from, to)
	if err != nil {
		memos = nil
	}
	c.Put(key, events, memos, a.Now())
	_ = cache.Save(a.CachePath, c)
	return events, memos, nil
}
