package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"calgrid/internal/event"
)

// Cache stores the last fetched window per source so views render offline
// and repeated navigation does not refetch the same range.
type Cache struct {
	Version int                `json:"version"`
	Windows map[string]*Window `json:"windows"`
}

type Window struct {
	Events    []event.Event `json:"events"`
	Memos     []event.Memo  `json:"memos"`
	FetchedAt string        `json:"fetched_at"`
}

func Default() *Cache {
	return &Cache{
		Version: 1,
		Windows: map[string]*Window{},
	}
}

// Key identifies one fetch window. Same source and same half-open range
// means same cached data.
func Key(source string, from, to time.Time) string {
	return fmt.Sprintf("%s|%s|%s", source, from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339))
}

// Fresh returns the cached window for key if it was fetched within ttl.
func (c *Cache) Fresh(key string, ttl time.Duration, now time.Time) (*Window, bool) {
	w, ok := c.Windows[key]
	if !ok {
		return nil, false
	}
	fetched, err := time.Parse(time.RFC3339, w.FetchedAt)
	if err != nil {
		return nil, false
	}
	if now.Sub(fetched) > ttl {
		return nil, false
	}
	return w, true
}

// Stale returns the cached window regardless of age, for offline fallback.
func (c *Cache) Stale(key string) (*Window, bool) {
	w, ok := c.Windows[key]
	return w, ok
}

func (c *Cache) Put(key string, events []event.Event, memos []event.Memo, now time.Time) {
	c.Windows[key] = &Window{
		Events:    events,
		Memos:     memos,
		FetchedAt: now.UTC().Format(time.RFC3339),
	}
}

func Load(path string) (*Cache, error) {
	// #nosec G304 -- path is controlled by the app cache location
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	var c Cache
	if err := json.Unmarshal(data, &c); err != nil {
		return Default(), nil
	}
	ensureDefaults(&c)
	return &c, nil
}

func Save(path string, cache *Cache) error {
	if cache == nil {
		return nil
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func ensureDefaults(cache *Cache) {
	if cache.Version == 0 {
		cache.Version = 1
	}
	if cache.Windows == nil {
		cache.Windows = map[string]*Window{}
	}
}
