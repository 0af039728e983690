package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"calgrid/internal/auth"
	"calgrid/internal/backend"
	"calgrid/internal/config"
	"calgrid/internal/event"
	"calgrid/internal/google/calendar"
	"calgrid/internal/paths"
	"calgrid/internal/timeparse"
)

// Source is anything that can serve events and memos for a window.
// The backend serves both; Google Calendar has no memo concept.
type Source interface {
	Events(ctx context.Context, from, to time.Time) ([]event.Event, error)
	Memos(ctx context.Context, from, to time.Time) ([]event.Memo, error)
}

type App struct {
	Config     *config.Config
	ConfigPath string
	CachePath  string
	Source     Source
	SourceName string
	Location   *time.Location
}

// Now returns the current time in the app's configured location.
// Always use this instead of caching time at startup.
func (a *App) Now() time.Time {
	return time.Now().In(a.Location)
}

func NewRootCmd() *cobra.Command {
	var compact bool
	cmd := &cobra.Command{
		Use:   "calgrid",
		Short: "Terminal calendar with day, week, and month layouts",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := initApp(cmd)
			if err != nil {
				return err
			}
			return startTUI(app, compact)
		},
	}
	cmd.Flags().BoolVar(&compact, "compact", false, "Start the month view with the reduced row cap")
	cmd.PersistentFlags().String("config", "", "Path to config.json (defaults to ~/.config/calgrid/config.json)")
	cmd.PersistentFlags().String("credentials", "", "Path to OAuth credentials.json (Google source only)")

	cmd.AddCommand(newMonthCmd())
	cmd.AddCommand(newWeekCmd())
	cmd.AddCommand(newDayCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newSetupCmd())

	return cmd
}

func initApp(cmd *cobra.Command) (*App, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	if cfgPath == "" {
		var err error
		cfgPath, err = paths.ConfigPath()
		if err != nil {
			return nil, err
		}
	}
	cfg, err := config.LoadOrCreate(cfgPath)
	if err != nil {
		return nil, err
	}
	loc, err := timeparse.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, err
	}
	cachePath, err := paths.CachePath()
	if err != nil {
		return nil, err
	}
	src, err := buildSource(cmd, cfg)
	if err != nil {
		return nil, err
	}
	return &App{
		Config:     cfg,
		ConfigPath: cfgPath,
		CachePath:  cachePath,
		Source:     src,
		SourceName: cfg.Source,
		Location:   loc,
	}, nil
}

func buildSource(cmd *cobra.Command, cfg *config.Config) (Source, error) {
	if cfg.Source == config.SourceGoogle {
		credPath, _ := cmd.Flags().GetString("credentials")
		if credPath == "" {
			var err error
			credPath, err = paths.CredentialsPath()
			if err != nil {
				return nil, err
			}
		}
		tokenPath, err := paths.TokenPath()
		if err != nil {
			return nil, err
		}
		ctx := context.Background()
		httpClient, err := auth.Client(ctx, credPath, tokenPath)
		if err != nil {
			return nil, fmt.Errorf("auth failed: %w", err)
		}
		client, err := calendar.New(ctx, httpClient)
		if err != nil {
			return nil, err
		}
		return &googleSource{client: client, calendarIDs: cfg.CalendarIDs}, nil
	}
	return backend.New(cfg.BackendURL, cfg.ProjectID), nil
}

type googleSource struct {
	client      *calendar.Client
	calendarIDs []string
}

func (g *googleSource) Events(ctx context.Context, from, to time.Time) ([]event.Event, error) {
	return g.client.Events(ctx, g.calendarIDs, from, to)
}

func (g *googleSource) Memos(ctx context.Context, from, to time.Time) ([]event.Memo, error) {
	return nil, nil
}

func (a *App) SaveConfig() error {
	if a == nil || a.Config == nil || a.ConfigPath == "" {
		return fmt.Errorf("config is not initialized")
	}
	return config.Save(a.ConfigPath, a.Config)
}
