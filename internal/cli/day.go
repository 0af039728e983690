package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"calgrid/internal/agenda"
	"calgrid/internal/event"
	"calgrid/internal/layout"
)

func newDayCmd() *cobra.Command {
	var dateStr string
	cmd := &cobra.Command{
		Use:   "day",
		Short: "Show one day with overlap columns and free slots",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := initApp(cmd)
			if err != nil {
				return err
			}
			day, err := parseDate(dateStr, app.Now(), app.Location)
			if err != nil {
				return err
			}
			text, err := buildDayText(app, day)
			if err != nil {
				return err
			}
			fmt.Println(text)
			return nil
		},
	}
	cmd.Flags().StringVar(&dateStr, "date", "", "Date to show (e.g. 'today', 'tomorrow', '2026-03-02')")
	return cmd
}

func buildDayText(app *App, day time.Time) (string, error) {
	dayEnd := day.AddDate(0, 0, 1)
	events, memos, err := app.FetchWindow(context.Background(), day, dayEnd)
	if err != nil {
		return "", err
	}
	items := event.Items(events, app.Location)

	res := layout.Day(items, day, layout.DayOptions{
		MaxColumns: app.Config.MaxVisibleColumns,
	})
	bands := bandedItems(items, day, dayEnd)

	workStart, workEnd, err := agenda.DayBounds(day, app.Config.WorkdayStart, app.Config.WorkdayEnd, app.Location)
	if err != nil {
		return "", err
	}
	var timed []layout.Item
	for _, it := range items {
		if !it.Banded() {
			timed = append(timed, it)
		}
	}
	free := agenda.FreeSlots(timed, workStart, workEnd)

	memoDates := event.MemoDates(memos)
	hasMemo := memoDates[day.Format(event.DateFormat)]
	return renderDay(day, res, bands, free, todosByEvent(events), hasMemo, 72), nil
}
