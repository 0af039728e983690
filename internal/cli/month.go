package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"calgrid/internal/event"
	"calgrid/internal/layout"
)

func newMonthCmd() *cobra.Command {
	var dateStr string
	var cellWidth int
	cmd := &cobra.Command{
		Use:   "month",
		Short: "Show the month grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := initApp(cmd)
			if err != nil {
				return err
			}
			day, err := parseDate(dateStr, app.Now(), app.Location)
			if err != nil {
				return err
			}
			from, to := monthWindow(day, app.Config.WeekStartDay())
			events, memos, err := app.FetchWindow(context.Background(), from, to)
			if err != nil {
				return err
			}
			items := event.Items(events, app.Location)
			res := layout.Month(items, day, layout.MonthOptions{
				WeekStart:      app.Config.WeekStartDay(),
				MaxVisibleRows: app.Config.MaxVisibleRows,
			})
			fmt.Println(renderMonth(res, app.Now(), event.MemoDates(memos), cellWidth))
			fmt.Println(gray("• memo   +N collapsed events"))
			return nil
		},
	}
	cmd.Flags().StringVar(&dateStr, "date", "", "Any date in the month to show (e.g. 'today', '2026-03-15')")
	cmd.Flags().IntVar(&cellWidth, "cell-width", defaultCellWidth, "Width of each day column")
	return cmd
}
