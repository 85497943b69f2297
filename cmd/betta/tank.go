// ABOUTME: CLI commands for the tank configuration.
// ABOUTME: Shows the current tank, saves a new configuration and lists history.
package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/harperreed/betta/internal/models"
	"github.com/spf13/cobra"
)

var (
	tankSize   float64
	tankHeater bool
	tankFilter bool
	tankLimit  int
)

var tankCmd = &cobra.Command{
	Use:   "tank",
	Short: "Show or change the tank",
	Long: `Show the current tank configuration.

Until a tank is saved, a 10 gallon tank with heater and filter is assumed.
Tanks under 5 gallons lower your betta's health outlook.

EXAMPLES:

  betta tank                                # Show the current tank
  betta tank set --size 5 --heater          # Save a new configuration
  betta tank set --filter=false             # Change one setting
  betta tank history                        # Previous configurations`,
	RunE: func(cmd *cobra.Command, args []string) error {
		printTank(cmd.OutOrStdout(), tr.Snapshot().Tank, tr.HasTank())
		return nil
	},
}

var tankSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Save a tank configuration",
	Long: `Save a new tank configuration.

Flags that are not given keep their current value.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		current := tr.Snapshot().Tank
		tank := &models.Tank{SizeGallons: current.SizeGallons, Heater: current.Heater, Filter: current.Filter}
		flags := cmd.Flags()
		if flags.Changed("size") {
			tank.SizeGallons = tankSize
		}
		if flags.Changed("heater") {
			tank.Heater = tankHeater
		}
		if flags.Changed("filter") {
			tank.Filter = tankFilter
		}

		if err := tr.SaveTank(commandContext(cmd), tank); err != nil {
			return reportError(cmd, err)
		}

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintf(out, "✓ Saved tank %s\n", faint.Sprint(shortID(tank.ID)))
		printTank(out, *tank, true)
		return nil
	},
}

var tankHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved tank configurations",
	RunE: func(cmd *cobra.Command, args []string) error {
		tanks, err := tr.TankHistory(commandContext(cmd), tankLimit)
		if err != nil {
			return reportError(cmd, err)
		}
		out := cmd.OutOrStdout()
		if len(tanks) == 0 {
			fmt.Fprintln(out, "No tanks saved.")
			return nil
		}
		for _, t := range tanks {
			fmt.Fprintf(out, "%s %s %5.1f gal  heater: %-3s  filter: %s\n",
				faint.Sprint(shortID(t.ID)),
				faint.Sprint(t.CreatedAt.Local().Format(timeLayout)),
				t.SizeGallons, yesNo(t.Heater), yesNo(t.Filter))
		}
		return nil
	},
}

func printTank(out io.Writer, t models.Tank, saved bool) {
	fmt.Fprintf(out, "Size:   %.1f gallons\n", t.SizeGallons)
	fmt.Fprintf(out, "Heater: %s\n", yesNo(t.Heater))
	fmt.Fprintf(out, "Filter: %s\n", yesNo(t.Filter))
	if !saved {
		faint.Fprintln(out, "(default, not saved yet)")
	}
}

func init() {
	tankSetCmd.Flags().Float64Var(&tankSize, "size", 0, "tank size in gallons")
	tankSetCmd.Flags().BoolVar(&tankHeater, "heater", false, "tank has a heater")
	tankSetCmd.Flags().BoolVar(&tankFilter, "filter", false, "tank has a filter")
	tankHistoryCmd.Flags().IntVarP(&tankLimit, "limit", "n", models.DisplayHistoryLimit, "max number of results")

	tankCmd.AddCommand(tankSetCmd)
	tankCmd.AddCommand(tankHistoryCmd)
	rootCmd.AddCommand(tankCmd)
}
