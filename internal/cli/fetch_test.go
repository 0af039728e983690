package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"calgrid/internal/config"
	"calgrid/internal/event"
)

type fakeSource struct {
	calls  int
	events []event.Event
	memos  []event.Memo
	err    error
}

func (f *fakeSource) Events(ctx context.Context, from, to time.Time) ([]event.Event, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.events, nil
}

func (f *fakeSource) Memos(ctx context.Context, from, to time.Time) ([]event.Memo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.memos, nil
}

func testApp(t *testing.T, src Source) *App {
	t.Helper()
	return &App{
		Config:     config.Default(),
		CachePath:  filepath.Join(t.TempDir(), "cache.json"),
		Source:     src,
		SourceName: "backend",
		Location:   time.UTC,
	}
}

func TestFetchWindowCachesResults(t *testing.T) {
	src := &fakeSource{
		events: []event.Event{{ID: "1", StartAt: "2026-03-02T09:00:00Z", EndAt: "2026-03-02T10:00:00Z"}},
		memos:  []event.Memo{{ID: "m", MemoDate: "2026-03-02"}},
	}
	app := testApp(t, src)
	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)

	events, memos, err := app.FetchWindow(context.Background(), from, to)
	if err != nil {
		t.Fatalf("FetchWindow: %v", err)
	}
	if len(events) != 1 || len(memos) != 1 {
		t.Fatalf("events=%d memos=%d", len(events), len(memos))
	}
	if _, _, err := app.FetchWindow(context.Background(), from, to); err != nil {
		t.Fatalf("second FetchWindow: %v", err)
	}
	if src.calls != 1 {
		t.Fatalf("fresh cache should skip the source, calls = %d", src.calls)
	}
}

func TestFetchWindowFallsBackToStaleCache(t *testing.T) {
	src := &fakeSource{events: []event.Event{{ID: "1", StartAt: "2026-03-02T09:00:00Z", EndAt: "2026-03-02T10:00:00Z"}}}
	app := testApp(t, src)
	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)
	if _, _, err := app.FetchWindow(context.Background(), from, to); err != nil {
		t.Fatalf("prime: %v", err)
	}

	// Same cache file, now with a broken source and an expired entry.
	broken := &fakeSource{err: fmt.Errorf("connection refused")}
	app2 := testApp(t, broken)
	app2.CachePath = app.CachePath
	// Force a miss on the freshness check by using a different window key.
	events, _, err := app2.FetchWindow(context.Background(), from, to.AddDate(0, 0, 1))
	if err == nil {
		t.Fatalf("uncached window with broken source should error, got %d events", len(events))
	}

	// The primed window is fresh, so even the broken source never runs.
	events, _, err = app2.FetchWindow(context.Background(), from, to)
	if err != nil {
		t.Fatalf("cached window should survive a broken source: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("events = %d", len(events))
	}
}

func TestFetchWindowPropagatesSourceError(t *testing.T) {
	app := testApp(t, &fakeSource{err: fmt.Errorf("boom")})
	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	if _, _, err := app.FetchWindow(context.Background(), from, from.AddDate(0, 0, 1)); err == nil {
		t.Fatalf("expected error with no cache to fall back on")
	}
}
