package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"calgrid/internal/event"
	"calgrid/internal/layout"
)

func newWeekCmd() *cobra.Command {
	var dateStr string
	var cellWidth int
	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show the week: all-day bands on top, timed columns below",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := initApp(cmd)
			if err != nil {
				return err
			}
			day, err := parseDate(dateStr, app.Now(), app.Location)
			if err != nil {
				return err
			}
			weekStart := weekStartOf(day, app.Config.WeekStartDay())
			from, to := weekStart, weekStart.AddDate(0, 0, 7)
			events, memos, err := app.FetchWindow(context.Background(), from, to)
			if err != nil {
				return err
			}
			items := event.Items(events, app.Location)
			res := layout.Week(items, weekStart, layout.WeekOptions{
				MaxVisibleColumns: app.Config.MaxVisibleColumns,
			})
			fmt.Println(renderWeek(res, app.Now(), event.MemoDates(memos), cellWidth))
			fmt.Println(gray("• memo   +N hidden events"))
			return nil
		},
	}
	cmd.Flags().StringVar(&dateStr, "date", "", "Any date in the week to show")
	cmd.Flags().IntVar(&cellWidth, "cell-width", defaultCellWidth, "Width of each day column")
	return cmd
}
