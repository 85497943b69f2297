// ABOUTME: CLI commands for stored preferences.
// ABOUTME: Switches guest/account mode and the display theme in config.json.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/betta/internal/config"
	"github.com/spf13/cobra"
)

var modeCmd = &cobra.Command{
	Use:   "mode [guest|account]",
	Short: "Show or set guest mode",
	Long: `Show or set whether betta uses the account backend.

In guest mode, nothing is read from or written to the account backend,
even if you are signed in.

EXAMPLES:

  betta mode            # Show the current mode
  betta mode guest      # Keep everything on this device
  betta mode account    # Use the account backend when signed in`,
	Args:        cobra.MaximumNArgs(1),
	ValidArgs:   []string{"guest", "account"},
	Annotations: map[string]string{skipSetup: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFile()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			mode := "account"
			if cfg.GuestMode {
				mode = "guest"
			}
			fmt.Fprintf(out, "%s (backend: %s)\n", mode, cfg.GetBackend())
			return nil
		}

		switch args[0] {
		case "guest":
			cfg.GuestMode = true
		case "account":
			cfg.GuestMode = false
		default:
			return fmt.Errorf("unknown mode: %s (use guest or account)", args[0])
		}
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		color.New(color.FgGreen).Fprintf(out, "✓ Mode set to %s\n", args[0])
		return nil
	},
}

var themeCmd = &cobra.Command{
	Use:         "theme [light|dark|system]",
	Short:       "Show or set the display theme",
	Args:        cobra.MaximumNArgs(1),
	ValidArgs:   []string{string(config.ThemeLight), string(config.ThemeDark), string(config.ThemeSystem)},
	Annotations: map[string]string{skipSetup: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFile()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			fmt.Fprintln(out, cfg.GetTheme())
			return nil
		}

		theme, err := config.ParseTheme(args[0])
		if err != nil {
			return err
		}
		cfg.Theme = theme
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		color.New(color.FgGreen).Fprintf(out, "✓ Theme set to %s\n", theme)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modeCmd)
	rootCmd.AddCommand(themeCmd)
}
