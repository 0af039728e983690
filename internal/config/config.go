package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	SourceBackend = "backend"
	SourceGoogle  = "google"
)

type Config struct {
	Source            string   `json:"source"`
	BackendURL        string   `json:"backend_url"`
	ProjectID         string   `json:"project_id"`
	CalendarIDs       []string `json:"calendar_ids"`
	Timezone          string   `json:"timezone"`
	WeekStart         string   `json:"week_start"`
	WorkdayStart      string   `json:"workday_start"`
	WorkdayEnd        string   `json:"workday_end"`
	MaxVisibleColumns int      `json:"max_visible_columns"`
	MaxVisibleRows    int      `json:"max_visible_rows"`
	CompactRows       int      `json:"compact_rows"`
}

func Load(path string) (*Config, error) {
	// #nosec G304 -- path is controlled by the app config location
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	normalize(&cfg)
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func Default() *Config {
	return &Config{
		Source:            SourceBackend,
		BackendURL:        "http://localhost:8080",
		CalendarIDs:       []string{"primary"},
		Timezone:          "local",
		WeekStart:         "monday",
		WorkdayStart:      "09:00",
		WorkdayEnd:        "18:00",
		MaxVisibleColumns: 3,
		MaxVisibleRows:    3,
		CompactRows:       2,
	}
}

func LoadOrCreate(path string) (*Config, error) {
	// #nosec G304 -- path is controlled by the app config location
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := Default()
			if err := Save(path, cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	normalize(&cfg)
	if err := Save(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// WeekStartDay maps the configured week_start name to a weekday.
// Anything unrecognized falls back to Monday.
func (c *Config) WeekStartDay() time.Weekday {
	switch strings.ToLower(c.WeekStart) {
	case "sunday", "sun":
		return time.Sunday
	case "saturday", "sat":
		return time.Saturday
	default:
		return time.Monday
	}
}

func normalize(cfg *Config) {
	if cfg.Source != SourceGoogle {
		cfg.Source = SourceBackend
	}
	if cfg.BackendURL == "" {
		cfg.BackendURL = "http://localhost:8080"
	}
	cfg.BackendURL = strings.TrimRight(cfg.BackendURL, "/")
	if cfg.Timezone == "" {
		cfg.Timezone = "local"
	}
	if cfg.WeekStart == "" {
		cfg.WeekStart = "monday"
	}
	if cfg.WorkdayStart == "" {
		cfg.WorkdayStart = "09:00"
	}
	if cfg.WorkdayEnd == "" {
		cfg.WorkdayEnd = "18:00"
	}
	if cfg.MaxVisibleColumns <= 0 {
		cfg.MaxVisibleColumns = 3
	}
	if cfg.MaxVisibleRows <= 0 {
		cfg.MaxVisibleRows = 3
	}
	if cfg.CompactRows <= 0 {
		cfg.CompactRows = 2
	}
	if len(cfg.CalendarIDs) == 0 {
		cfg.CalendarIDs = []string{"primary"}
		return
	}
	seen := make(map[string]bool, len(cfg.CalendarIDs))
	filtered := make([]string, 0, len(cfg.CalendarIDs))
	for _, id := range cfg.CalendarIDs {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		filtered = append(filtered, id)
	}
	if len(filtered) == 0 {
		filtered = []string{"primary"}
	}
	cfg.CalendarIDs = filtered
}
