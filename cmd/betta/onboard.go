// ABOUTME: CLI command for the first-run onboarding check.
// ABOUTME: Scores a tank description with the Celsius onboarding table.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/betta/internal/models"
	"github.com/harperreed/betta/internal/scoring"
	"github.com/spf13/cobra"
)

var (
	onboardSize    float64
	onboardHeater  bool
	onboardFilter  bool
	onboardTempC   float64
	onboardPH      float64
	onboardAmmonia float64
	onboardNitrite float64
	onboardNitrate float64
	onboardSave    bool
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Quick first-run check of your setup",
	Long: `Score a quick description of your setup with the onboarding table.

Temperature is entered in °C here. The onboarding score is a simpler table
than 'betta status' and the two can disagree.

With --save, the tank and a water reading (converted to °F) are recorded.

EXAMPLES:

  betta onboard --size 5 --heater --filter --temp-c 26 --ph 7
  betta onboard --size 2.5 --temp-c 22 --save`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := scoring.BettaScoreInput{
			TankSizeGallons:    onboardSize,
			Heater:             onboardHeater,
			Filter:             onboardFilter,
			TemperatureCelsius: onboardTempC,
			PH:                 onboardPH,
			Ammonia:            onboardAmmonia,
			Nitrite:            onboardNitrite,
			Nitrate:            onboardNitrate,
			Fish:               tr.Snapshot().Fish,
		}
		score := scoring.BettaScore(in)
		class := scoring.ClassifyScore(score)

		out := cmd.OutOrStdout()
		levelColor(class.Level).Fprintf(out, "BettaScore: %d/100  %s\n", score, class.Level)
		fmt.Fprintln(out, class.Description)

		if !onboardSave {
			return nil
		}

		ctx := commandContext(cmd)
		if err := tr.SaveTank(ctx, &models.Tank{SizeGallons: onboardSize, Heater: onboardHeater, Filter: onboardFilter}); err != nil {
			return reportError(cmd, err)
		}
		reading := &models.WaterReading{
			Temperature: models.CelsiusToFahrenheit(onboardTempC),
			PH:          onboardPH,
			Ammonia:     onboardAmmonia,
			Nitrite:     onboardNitrite,
			Nitrate:     onboardNitrate,
		}
		if err := tr.AddWaterReading(ctx, reading); err != nil {
			return reportError(cmd, err)
		}
		color.New(color.FgGreen).Fprintln(out, "✓ Saved tank and water reading")
		return nil
	},
}

func init() {
	f := onboardCmd.Flags()
	f.Float64Var(&onboardSize, "size", models.DefaultTankSizeGallons, "tank size in gallons")
	f.BoolVar(&onboardHeater, "heater", false, "tank has a heater")
	f.BoolVar(&onboardFilter, "filter", false, "tank has a filter")
	f.Float64Var(&onboardTempC, "temp-c", 26, "temperature in °C")
	f.Float64Var(&onboardPH, "ph", 7.0, "pH")
	f.Float64Var(&onboardAmmonia, "ammonia", 0, "ammonia in ppm")
	f.Float64Var(&onboardNitrite, "nitrite", 0, "nitrite in ppm")
	f.Float64Var(&onboardNitrate, "nitrate", 10, "nitrate in ppm")
	f.BoolVar(&onboardSave, "save", false, "record the tank and water reading")
	rootCmd.AddCommand(onboardCmd)
}
