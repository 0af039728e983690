package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"calgrid/internal/auth"
	"calgrid/internal/config"
	"calgrid/internal/google/calendar"
	"calgrid/internal/paths"
	"calgrid/internal/timeparse"
)

type simpleCalendar struct {
	Title   string
	ID      string
	Primary bool
}

type choiceItem[T any] struct {
	Label string
	Item  T
}

func newSetupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Interactive setup for the event source and view defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, err := resolveConfigPath(cmd)
			if err != nil {
				return err
			}
			cfg, err := config.LoadOrCreate(cfgPath)
			if err != nil {
				return err
			}

			printSection("Event source")
			if err := setupSource(cmd, cfg); err != nil {
				return err
			}

			printSection("Views")
			if err := setupViews(cfg); err != nil {
				return err
			}

			if err := config.Save(cfgPath, cfg); err != nil {
				return err
			}
			fmt.Printf("\nSetup complete. Config saved to %s\n", cfgPath)
			return nil
		},
	}
	return cmd
}

func setupSource(cmd *cobra.Command, cfg *config.Config) error {
	var source string
	prompt := &survey.Select{
		Message: "Where do your events live?",
		Options: []string{"Calendar backend (HTTP)", "Google Calendar"},
	}
	if err := survey.AskOne(prompt, &source, survey.WithValidator(survey.Required)); err != nil {
		return err
	}
	if strings.HasPrefix(source, "Google") {
		cfg.Source = config.SourceGoogle
		return setupGoogleCalendars(cmd, cfg)
	}
	cfg.Source = config.SourceBackend

	var backendURL string
	if err := survey.AskOne(&survey.Input{Message: "Backend URL", Default: cfg.BackendURL}, &backendURL, survey.WithValidator(survey.Required)); err != nil {
		return err
	}
	cfg.BackendURL = strings.TrimRight(strings.TrimSpace(backendURL), "/")

	var projectID string
	if err := survey.AskOne(&survey.Input{Message: "Project ID (blank for all)", Default: cfg.ProjectID}, &projectID); err != nil {
		return err
	}
	cfg.ProjectID = strings.TrimSpace(projectID)
	return nil
}

func setupGoogleCalendars(cmd *cobra.Command, cfg *config.Config) error {
	credPath, _ := cmd.Flags().GetString("credentials")
	if credPath == "" {
		var err error
		credPath, err = paths.CredentialsPath()
		if err != nil {
			return err
		}
	}
	tokenPath, err := paths.TokenPath()
	if err != nil {
		return err
	}
	ctx := context.Background()
	httpClient, err := auth.Client(ctx, credPath, tokenPath)
	if err != nil {
		return fmt.Errorf("auth failed: %w", err)
	}
	client, err := calendar.New(ctx, httpClient)
	if err != nil {
		return err
	}
	items, err := client.ListCalendars(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Println("No calendars found; keeping current selection.")
		return nil
	}
	calendars := make([]simpleCalendar, 0, len(items))
	for _, cal := range items {
		calendars = append(calendars, simpleCalendar{Title: cal.Summary, ID: cal.Id, Primary: cal.Primary})
	}
	choices := buildCalendarChoices(calendars)
	options := labelsFromChoices(choices)

	var defaults []string
	selected := map[string]bool{}
	for _, id := range cfg.CalendarIDs {
		selected[id] = true
	}
	for _, choice := range choices {
		if selected[choice.Item.ID] {
			defaults = append(defaults, choice.Label)
		}
	}

	var picked []string
	prompt := &survey.MultiSelect{
		Message:  "Select calendars to show",
		Options:  options,
		Default:  defaults,
		PageSize: 12,
	}
	if err := survey.AskOne(prompt, &picked, survey.WithValidator(survey.MinItems(1))); err != nil {
		return err
	}
	ids := make([]string, 0, len(picked))
	for _, label := range picked {
		if choice, ok := findChoice(choices, label); ok {
			ids = append(ids, choice.Item.ID)
		}
	}
	cfg.CalendarIDs = ids
	return nil
}

func setupViews(cfg *config.Config) error {
	var weekStart string
	if err := survey.AskOne(&survey.Select{
		Message: "Week starts on",
		Options: []string{"monday", "sunday", "saturday"},
		Default: strings.ToLower(cfg.WeekStart),
	}, &weekStart); err != nil {
		return err
	}
	cfg.WeekStart = weekStart

	var timezone string
	if err := survey.AskOne(&survey.Input{Message: "Timezone (IANA name or 'local')", Default: cfg.Timezone}, &timezone, survey.WithValidator(validTimezone)); err != nil {
		return err
	}
	cfg.Timezone = strings.TrimSpace(timezone)

	var workStart string
	if err := survey.AskOne(&survey.Input{Message: "Workday start (HH:MM)", Default: cfg.WorkdayStart}, &workStart); err != nil {
		return err
	}
	cfg.WorkdayStart = strings.TrimSpace(workStart)

	var workEnd string
	if err := survey.AskOne(&survey.Input{Message: "Workday end (HH:MM)", Default: cfg.WorkdayEnd}, &workEnd); err != nil {
		return err
	}
	cfg.WorkdayEnd = strings.TrimSpace(workEnd)
	return nil
}

func validTimezone(val interface{}) error {
	name, ok := val.(string)
	if !ok {
		return fmt.Errorf("expected a string")
	}
	if _, err := timeparse.LoadLocation(strings.TrimSpace(name)); err != nil {
		return fmt.Errorf("unknown timezone: %s", name)
	}
	return nil
}

func buildCalendarChoices(cals []simpleCalendar) []choiceItem[simpleCalendar] {
	counts := map[string]int{}
	for _, c := range cals {
		counts[c.Title]++
	}
	index := map[string]int{}
	choices := make([]choiceItem[simpleCalendar], 0, len(cals))
	for _, c := range cals {
		label := c.Title
		if c.Primary {
			label = fmt.Sprintf("%s (primary)", label)
		}
		if counts[c.Title] > 1 {
			index[c.Title]++
			label = fmt.Sprintf("%s (%d)", label, index[c.Title])
		}
		choices = append(choices, choiceItem[simpleCalendar]{Label: label, Item: c})
	}
	sort.SliceStable(choices, func(i, j int) bool { return choices[i].Label < choices[j].Label })
	return choices
}

func labelsFromChoices[T any](choices []choiceItem[T]) []string {
	labels := make([]string, 0, len(choices))
	for _, choice := range choices {
		labels = append(labels, choice.Label)
	}
	return labels
}

func findChoice[T any](choices []choiceItem[T], label string) (choiceItem[T], bool) {
	for _, choice := range choices {
		if choice.Label == label {
			return choice, true
		}
	}
	var zero choiceItem[T]
	return zero, false
}

func printSection(title string) {
	fmt.Printf("\n\033[1m%s\033[0m\n", title)
}
