package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/jonathan/jobdash/internal/config"
	"github.com/jonathan/jobdash/internal/prefs"
)

var themeCmd = &cobra.Command{
	Use:       "theme [light|dark|toggle]",
	Short:     "Show or change the saved color theme",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"light", "dark", "toggle"},
	RunE:      runTheme,
}

func init() {
	rootCmd.AddCommand(themeCmd)
}

func runTheme(cmd *cobra.Command, args []string) error {
	cfg, err := config.Resolve(configPath)
	if err != nil {
		return err
	}
	store := prefs.Open(cfg.PrefsPath)
	if len(args) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), store.Theme())
		return nil
	}

	var next prefs.Theme
	if args[0] == "toggle" {
		next, err = store.ToggleTheme()
	} else {
		if next, err = prefs.ParseTheme(args[0]); err != nil {
			return err
		}
		err = store.SetTheme(next)
	}
	if err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), pterm.Success.Sprintfln("Theme set to %s", next))
	return nil
}
