package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matheuskafuri/newsdesk/internal/cache"
)

var themeCmd = &cobra.Command{
	Use:       "theme [dark|light|toggle]",
	Short:     "Show or set the reader's color theme",
	Long:      "Without an argument, print the stored theme. The choice is kept in the local preference database.",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"dark", "light", "toggle"},
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := cache.Open(cache.DefaultPath())
		if err != nil {
			return fmt.Errorf("opening preferences: %w", err)
		}
		defer db.Close()

		dark, err := db.DarkMode()
		if err != nil {
			return err
		}

		if len(args) == 1 {
			dark, err = parseTheme(dark, args[0])
			if err != nil {
				return err
			}
			if err := db.SetDarkMode(dark); err != nil {
				return err
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), themeName(dark))
		return nil
	},
}

// parseTheme returns the dark flag arg asks for, given the current one.
func parseTheme(current bool, arg string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "dark":
		return true, nil
	case "light":
		return false, nil
	case "toggle":
		return !current, nil
	default:
		return current, fmt.Errorf("unknown theme %q (valid: dark, light, toggle)", arg)
	}
}

func themeName(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}
