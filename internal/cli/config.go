package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"calgrid/internal/config"
	"calgrid/internal/paths"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage local configuration",
	}
	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigCalendarsCmd())
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default config.json",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveConfigPath(cmd)
			if err != nil {
				return err
			}
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("config already exists: %s", path)
				}
			}
			cfg := config.Default()
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Printf("Config written: %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing config")
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current config",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveConfigPath(cmd)
			if err != nil {
				return err
			}
			cfg, err := config.LoadOrCreate(path)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", path)
			fmt.Printf("%s\n", string(data))
			return nil
		},
	}
	return cmd
}

func newConfigCalendarsCmd() *cobra.Command {
	var showIDs bool
	cmd := &cobra.Command{
		Use:   "calendars",
		Short: "List available Google calendars",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := initApp(cmd)
			if err != nil {
				return err
			}
			src, ok := app.Source.(*googleSource)
			if !ok {
				return fmt.Errorf("calendar listing requires source %q", config.SourceGoogle)
			}
			items, err := src.client.ListCalendars(context.Background())
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Println("(none)")
				return nil
			}
			for _, cal := range items {
				primary := ""
				if cal.Primary {
					primary = " (primary)"
				}
				if showIDs {
					fmt.Printf("- %s%s\n  id: %s\n", cal.Summary, primary, cal.Id)
				} else {
					fmt.Printf("- %s%s\n", cal.Summary, primary)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showIDs, "ids", false, "Show calendar IDs")
	return cmd
}

func resolveConfigPath(cmd *cobra.Command) (string, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	if cfgPath == "" {
		return paths.ConfigPath()
	}
	return cfgPath, nil
}
