// ABOUTME: CLI commands for water test readings.
// ABOUTME: Logs a reading and lists recent readings with their alerts.
package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/harperreed/betta/internal/models"
	"github.com/harperreed/betta/internal/scoring"
	"github.com/spf13/cobra"
)

var (
	waterTemp    float64
	waterPH      float64
	waterAmmonia float64
	waterNitrite float64
	waterNitrate float64
	waterAt      string
	waterLimit   int
)

var waterCmd = &cobra.Command{
	Use:     "water",
	Aliases: []string{"w"},
	Short:   "Show or log water test readings",
	Long: `Show the latest water reading and any water alerts.

Temperature is in °F. Ammonia, nitrite and nitrate are in ppm.

SAFE RANGES:

  Temperature   75-82 °F ideal, 70-85 °F survivable
  pH            6.5-7.5 ideal, 6.0-8.0 survivable
  Ammonia       0 ppm
  Nitrite       0 ppm
  Nitrate       under 20 ppm

EXAMPLES:

  betta water                                      # Latest reading
  betta water add --temp 79 --ph 7.0 --nitrate 10  # Log a test
  betta water add --ammonia 0.25 --at 2026-03-01   # Backdate a reading
  betta water list -n 10                           # Recent readings`,
	RunE: func(cmd *cobra.Command, args []string) error {
		water := tr.Snapshot().Water
		out := cmd.OutOrStdout()
		printWater(out, water)
		printAlerts(out, scoring.DeriveWaterAlerts(water))
		return nil
	},
}

var waterAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a water test reading",
	Long: `Log a water test reading.

Flags that are not given carry over from the latest reading.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		at, err := atFlag(waterAt)
		if err != nil {
			return err
		}
		current := tr.Snapshot().Water
		reading := &models.WaterReading{
			Temperature: current.Temperature,
			PH:          current.PH,
			Ammonia:     current.Ammonia,
			Nitrite:     current.Nitrite,
			Nitrate:     current.Nitrate,
			CreatedAt:   at,
		}
		flags := cmd.Flags()
		if flags.Changed("temp") {
			reading.Temperature = waterTemp
		}
		if flags.Changed("ph") {
			reading.PH = waterPH
		}
		if flags.Changed("ammonia") {
			reading.Ammonia = waterAmmonia
		}
		if flags.Changed("nitrite") {
			reading.Nitrite = waterNitrite
		}
		if flags.Changed("nitrate") {
			reading.Nitrate = waterNitrate
		}

		if err := tr.AddWaterReading(commandContext(cmd), reading); err != nil {
			return reportError(cmd, err)
		}

		out := cmd.OutOrStdout()
		color.New(color.FgGreen).Fprintf(out, "✓ Logged water reading %s\n", faint.Sprint(shortID(reading.ID)))
		printWater(out, *reading)
		printAlerts(out, scoring.DeriveWaterAlerts(*reading))
		return nil
	},
}

var waterListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List recent water readings",
	RunE: func(cmd *cobra.Command, args []string) error {
		readings, err := tr.WaterHistory(commandContext(cmd), waterLimit)
		if err != nil {
			return reportError(cmd, err)
		}
		out := cmd.OutOrStdout()
		if len(readings) == 0 {
			fmt.Fprintln(out, "No water readings logged.")
			return nil
		}
		fmt.Fprintln(out, faint.Sprint("ID       WHEN              TEMP   PH    NH3   NO2   NO3"))
		for _, w := range readings {
			fmt.Fprintf(out, "%s %s %5.1f  %4.1f  %4.2f  %4.2f  %5.1f\n",
				faint.Sprint(shortID(w.ID)),
				faint.Sprint(w.CreatedAt.Local().Format(timeLayout)),
				w.Temperature, w.PH, w.Ammonia, w.Nitrite, w.Nitrate)
		}
		return nil
	},
}

func printWater(out io.Writer, w models.WaterReading) {
	fmt.Fprintf(out, "Temperature: %.1f °F (%.1f °C)\n", w.Temperature, models.FahrenheitToCelsius(w.Temperature))
	fmt.Fprintf(out, "pH:          %.1f\n", w.PH)
	fmt.Fprintf(out, "Ammonia:     %.2f ppm\n", w.Ammonia)
	fmt.Fprintf(out, "Nitrite:     %.2f ppm\n", w.Nitrite)
	fmt.Fprintf(out, "Nitrate:     %.1f ppm\n", w.Nitrate)
}

func init() {
	f := waterAddCmd.Flags()
	f.Float64Var(&waterTemp, "temp", 0, "temperature in °F")
	f.Float64Var(&waterPH, "ph", 0, "pH")
	f.Float64Var(&waterAmmonia, "ammonia", 0, "ammonia in ppm")
	f.Float64Var(&waterNitrite, "nitrite", 0, "nitrite in ppm")
	f.Float64Var(&waterNitrate, "nitrate", 0, "nitrate in ppm")
	f.StringVar(&waterAt, "at", "", "timestamp (YYYY-MM-DD HH:MM)")
	waterListCmd.Flags().IntVarP(&waterLimit, "limit", "n", models.DisplayHistoryLimit, "max number of results")

	waterCmd.AddCommand(waterAddCmd)
	waterCmd.AddCommand(waterListCmd)
	rootCmd.AddCommand(waterCmd)
}
